package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null"                 json:"name"`
}

type Laboratory struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null"                 json:"name"`
}

type Supplier struct {
	ID      int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"not null"                 json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Product struct {
	ID                int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string    `gorm:"not null"                 json:"name"`
	CategoryID        int       `gorm:"index;not null"           json:"category_id"`
	LaboratoryID      int       `gorm:"index;not null"           json:"laboratory_id"`
	Price             float64   `gorm:"not null"                 json:"price"`
	Stock             int       `json:"stock"`
	MinimumStock      int       `json:"minimum_stock"`
	SideEffects       string    `json:"side_effects"`
	UsageInstructions string    `json:"usage_instructions"`
	ExpirationDate    time.Time `json:"expiration_date"`
}

// ExpiringProduct is a separate table written on its own, it is not a view
// over products and nothing keeps it in sync automatically.
type ExpiringProduct struct {
	ProductID      int       `gorm:"primaryKey" json:"product_id"`
	Name           string    `gorm:"not null"   json:"name"`
	ExpirationDate time.Time `json:"expiration_date"`
}

type Invoice struct {
	ID       int       `gorm:"primaryKey;autoIncrement" json:"id"`
	SaleDate time.Time `gorm:"index"                    json:"sale_date"`
	Total    float64   `json:"total"`
	UserID   int       `gorm:"index"                    json:"user_id"`
}

type InvoiceLine struct {
	ID        int     `gorm:"primaryKey;autoIncrement" json:"id"`
	InvoiceID int     `gorm:"index;not null"           json:"invoice_id"`
	ProductID int     `gorm:"index;not null"           json:"product_id"`
	Quantity  int     `gorm:"not null"                 json:"quantity"`
	UnitPrice float64 `gorm:"not null"                 json:"unit_price"`
	Subtotal  float64 `gorm:"-"                        json:"subtotal"`
}

// Subtotal is never persisted, it is recomputed on every read.
func (l *InvoiceLine) AfterFind(tx *gorm.DB) error {
	l.Subtotal = float64(l.Quantity) * l.UnitPrice
	return nil
}

type Purchase struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	SupplierID   int       `gorm:"index;not null"           json:"supplier_id"`
	PurchaseDate time.Time `json:"purchase_date"`
	Total        float64   `json:"total"`
}

type PurchaseLine struct {
	ID         int     `gorm:"primaryKey;autoIncrement" json:"id"`
	PurchaseID int     `gorm:"index;not null"           json:"purchase_id"`
	ProductID  int     `gorm:"index;not null"           json:"product_id"`
	Quantity   int     `gorm:"not null"                 json:"quantity"`
	UnitPrice  float64 `gorm:"not null"                 json:"unit_price"`
	Subtotal   float64 `gorm:"-"                        json:"subtotal"`
}

func (l *PurchaseLine) AfterFind(tx *gorm.DB) error {
	l.Subtotal = float64(l.Quantity) * l.UnitPrice
	return nil
}

type InventoryMovement struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID    int       `gorm:"index;not null"           json:"product_id"`
	MovementType string    `gorm:"not null"                 json:"movement_type"`
	Quantity     int       `gorm:"not null"                 json:"quantity"`
	MovementDate time.Time `json:"movement_date"`
	UserID       int       `gorm:"index"                    json:"user_id"`
}

type User struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
	PIN  int    `gorm:"not null"                 json:"pin"`
	Role string `gorm:"not null"                 json:"role"`
}
