// Package pricing derives shipping, tax, discount and totals from a subtotal.
// The cart summary and the order compiler share the same policy so a cart
// read without coupon and the order created from it agree on subtotal and
// shipping.
package pricing

import (
	"strings"

	"vyaha-be/internal/config"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places kept on computed amounts.
const MoneyScale = 2

type Policy struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	TaxRate               decimal.Decimal
	CouponRate            decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThreshold: decimal.NewFromInt(500),
		FlatShippingFee:       decimal.NewFromInt(50),
		TaxRate:               decimal.RequireFromString("0.10"),
		CouponRate:            decimal.RequireFromString("0.10"),
	}
}

func FromConfig(cfg config.PricingConfig) Policy {
	return Policy{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		FlatShippingFee:       cfg.FlatShippingFee,
		TaxRate:               cfg.TaxRate,
		CouponRate:            cfg.CouponRate,
	}
}

// Line is the priced quantity of a single product.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

func (l Line) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Amount())
	}
	return sum
}

// Shipping is free strictly above the threshold.
func (p Policy) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.FlatShippingFee
}

// CartSummary is the cart view's breakdown.
type CartSummary struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	ShippingFee   decimal.Decimal `json:"shipping_fee"`
	Discount      decimal.Decimal `json:"discount"`
	CouponApplied bool            `json:"coupon_applied"`
	Total         decimal.Decimal `json:"total"`
}

// Summarize prices a cart. Any non-blank coupon code activates the discount
// once; codes are not checked for authenticity.
func (p Policy) Summarize(subtotal decimal.Decimal, coupon string) CartSummary {
	s := CartSummary{
		Subtotal:    subtotal.Round(MoneyScale),
		ShippingFee: p.Shipping(subtotal),
		Discount:    decimal.Zero,
	}

	if strings.TrimSpace(coupon) != "" {
		s.CouponApplied = true
		s.Discount = subtotal.Mul(p.CouponRate).Round(MoneyScale)
	}

	s.Total = s.Subtotal.Add(s.ShippingFee).Sub(s.Discount).Round(MoneyScale)
	return s
}

// OrderTotals is the checkout breakdown persisted on an order.
type OrderTotals struct {
	Subtotal    decimal.Decimal
	ShippingFee decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// Totals prices an order. Tax is charged on the full subtotal and no coupon
// is applied at this stage.
func (p Policy) Totals(subtotal decimal.Decimal) OrderTotals {
	t := OrderTotals{
		Subtotal:    subtotal.Round(MoneyScale),
		ShippingFee: p.Shipping(subtotal),
		Tax:         subtotal.Mul(p.TaxRate).Round(MoneyScale),
	}
	t.Total = t.Subtotal.Add(t.ShippingFee).Add(t.Tax)
	return t
}
