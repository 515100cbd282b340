package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Price is an exact amount with at most two decimal places and three whole
// digits. It maps onto a decimal(5,2) column and is written on the wire as a
// string ("5.99").
type Price struct {
	decimal.Decimal
}

// MaxPrice is the largest amount a decimal(5,2) column holds.
var MaxPrice = NewPrice(99999)

var (
	ErrInvalidPrice   = errors.New("invalid price")
	ErrPricePrecision = errors.New("price has more than 2 decimal places")
	ErrPriceRange     = errors.New("price has more than 3 digits before the decimal point")
)

// NewPrice builds a price from hundredths.
func NewPrice(cents int64) Price {
	return Price{decimal.New(cents, -2)}
}

// ParsePrice parses a decimal string such as "5.99", "12", "-0.5" or "1e2".
func ParsePrice(s string) (Price, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Price{}, ErrInvalidPrice
	}
	return checkPrice(d)
}

func checkPrice(d decimal.Decimal) (Price, error) {
	if d.Exponent() < -2 {
		return Price{}, ErrPricePrecision
	}
	if d.Abs().Cmp(MaxPrice.Decimal) > 0 {
		return Price{}, ErrPriceRange
	}
	return Price{d}, nil
}

// Equal reports whether both prices hold the same amount.
func (p Price) Equal(o Price) bool { return p.Decimal.Equal(o.Decimal) }

func (p Price) String() string { return p.StringFixed(2) }

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}

// UnmarshalJSON accepts either a JSON string ("5.99") or a JSON number (5.99).
func (p *Price) UnmarshalJSON(data []byte) error {
	if strings.TrimSpace(string(data)) == "null" {
		return ErrInvalidPrice
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return ErrInvalidPrice
	}
	v, err := checkPrice(d)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Value implements driver.Valuer.
func (p Price) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements sql.Scanner. Postgres returns numerics as text; SQLite may
// hand back REAL or INTEGER depending on the stored value.
func (p *Price) Scan(src any) error {
	if src == nil {
		*p = Price{}
		return nil
	}
	var d decimal.Decimal
	if err := d.Scan(src); err != nil {
		return fmt.Errorf("price: scan %v: %w", src, err)
	}
	*p = Price{d}
	return nil
}
