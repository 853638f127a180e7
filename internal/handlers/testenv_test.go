package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/farmacia-chavarria/backend/internal/config"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// a single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })

	return &testEnv{T: t, E: echo.New(), DB: db}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// pagedBody decodes the standard paged envelope.
type pagedBody struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int64 `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

func decodePaged(t *testing.T, rec *httptest.ResponseRecorder, itemsKey string, items interface{}) pagedBody {
	t.Helper()

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.Contains(t, raw, itemsKey)
	require.NoError(t, json.Unmarshal(raw[itemsKey], items))

	var meta pagedBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	return meta
}

type publishedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type stubPublisher struct {
	events []publishedEvent
}

func (p *stubPublisher) PublishEvent(ctx context.Context, topic, key string, event interface{}) error {
	p.events = append(p.events, publishedEvent{Topic: topic, Key: key, Event: event.(map[string]any)})
	return nil
}

type stubMailer struct {
	to  string
	pin int
	err error
}

func (m *stubMailer) SendPin(to string, pin int) error {
	if m.err != nil {
		return m.err
	}
	m.to = to
	m.pin = pin
	return nil
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}
