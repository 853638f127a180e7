package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer signs short lived access tokens bound to the username claim.
type Issuer struct {
	Secret        []byte
	TokenIssuer   string
	Audience      string
	ExpireMinutes int
}

func (i *Issuer) Generate(username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"iss": i.TokenIssuer,
		"aud": i.Audience,
		"iat": now.Unix(),
		"exp": now.Add(time.Duration(i.ExpireMinutes) * time.Minute).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.Secret)
}
