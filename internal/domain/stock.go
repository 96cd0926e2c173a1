package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quantities are stored as numeric(14,2).
const QuantityScale = 2

// MaxQuantity is the first value the quantity columns cannot hold.
var MaxQuantity = decimal.New(1, 12)

// ValidQuantity reports whether q is positive and fits the quantity columns
// without rounding.
func ValidQuantity(q decimal.Decimal) bool {
	return q.IsPositive() &&
		q.LessThan(MaxQuantity) &&
		q.Equal(q.Truncate(QuantityScale))
}

type StockRecord struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type SaleRecord struct {
	ID        uint            `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

// SaleDate truncates t to the calendar day it falls on in UTC.
func SaleDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
