package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/vietanh2810/supply-chain-api/internal/domain"
)

var errBadQuantity = errors.New("must be positive, below 1e12 and have at most 2 decimals")

var storableQuantity = validation.By(func(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok || !domain.ValidQuantity(d) {
		return errBadQuantity
	}
	return nil
})

type AddStockRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

func (req *AddStockRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ProductID, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.Quantity, storableQuantity),
	)
}

type RecordSaleRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	// Date is YYYY-MM-DD. Empty means today.
	Date string `json:"date"`
}

func (req *RecordSaleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ProductID, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.Quantity, storableQuantity),
		validation.Field(&req.Date, validation.Date(domain.DateLayout)),
	)
}

// SaleDate returns the parsed date, or the zero time when none was sent.
func (req *RecordSaleRequest) SaleDate() time.Time {
	if req.Date == "" {
		return time.Time{}
	}

	t, err := time.Parse(domain.DateLayout, req.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}
