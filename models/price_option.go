package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceOptionType is the billing unit of a price option; it also gives the
// unit of Duration.
type PriceOptionType string

const (
	PriceOptionHourly  PriceOptionType = "Hourly"
	PriceOptionWeekly  PriceOptionType = "Weekly"
	PriceOptionMonthly PriceOptionType = "Monthly"
)

// MaxPrice is the largest value a decimal(10,2) price column holds.
var MaxPrice = decimal.RequireFromString("99999999.99")

func (t PriceOptionType) Valid() bool {
	switch t {
	case PriceOptionHourly, PriceOptionWeekly, PriceOptionMonthly:
		return true
	}
	return false
}

type PriceOption struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ServiceID uint            `gorm:"index;not null" json:"serviceId"`
	Duration  int             `gorm:"not null;check:chk_price_options_duration,duration > 0" json:"duration"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null;check:chk_price_options_price,price >= 0" json:"price"`
	Type      PriceOptionType `gorm:"type:varchar(10);not null;check:chk_price_options_type,type IN ('Hourly','Weekly','Monthly')" json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (PriceOption) TableName() string {
	return "service_price_options"
}

// Validate checks duration > 0, price >= 0 and the billing type.
func (p *PriceOption) Validate() error {
	if p.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %d", p.Duration)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("price must not be negative, got %s", p.Price)
	}
	if p.Price.GreaterThan(MaxPrice) {
		return fmt.Errorf("price must not exceed %s, got %s", MaxPrice, p.Price)
	}
	if !p.Type.Valid() {
		return fmt.Errorf("invalid price option type %q", p.Type)
	}
	return nil
}

func (p *PriceOption) BeforeSave(tx *gorm.DB) error {
	p.Price = p.Price.Round(2)
	return p.Validate()
}

// MarshalJSON renders the price with exactly two fractional digits.
func (p PriceOption) MarshalJSON() ([]byte, error) {
	type alias PriceOption
	return json.Marshal(struct {
		alias
		Price string `json:"price"`
	}{
		alias: alias(p),
		Price: p.Price.StringFixed(2),
	})
}
