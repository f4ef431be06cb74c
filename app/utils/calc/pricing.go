package calc

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

type Charges struct {
	Tax      decimal.Decimal
	Shipping decimal.Decimal
}

// PricingPolicy computes the charges added on top of an order subtotal.
type PricingPolicy interface {
	Charges(subtotal decimal.Decimal, totalQuantity int) Charges
}

// NoCharges leaves the total equal to the subtotal.
type NoCharges struct{}

func (NoCharges) Charges(decimal.Decimal, int) Charges {
	return Charges{Tax: decimal.Zero, Shipping: decimal.Zero}
}

// PercentTaxFlatShipping charges a percentage tax on the subtotal and a flat shipping fee
// that is waived once the subtotal reaches FreeShippingOver (when set).
type PercentTaxFlatShipping struct {
	TaxPercent       decimal.Decimal
	ShippingFlat     decimal.Decimal
	FreeShippingOver decimal.Decimal
}

func (p PercentTaxFlatShipping) Charges(subtotal decimal.Decimal, _ int) Charges {
	shipping := p.ShippingFlat
	if p.FreeShippingOver.IsPositive() && subtotal.GreaterThanOrEqual(p.FreeShippingOver) {
		shipping = decimal.Zero
	}
	return Charges{
		Tax:      CalculateTax(subtotal, p.TaxPercent),
		Shipping: shipping.Round(2),
	}
}

func CalculateTax(subtotal, taxPercent decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxPercent).Div(hundred).Round(2)
}

func CalculateTotal(subtotal decimal.Decimal, c Charges) decimal.Decimal {
	return subtotal.Add(c.Tax).Add(c.Shipping)
}

// NewPolicy returns NoCharges unless a tax rate or shipping fee is configured.
func NewPolicy(taxPercent, shippingFlat, freeShippingOver decimal.Decimal) PricingPolicy {
	if taxPercent.IsZero() && shippingFlat.IsZero() {
		return NoCharges{}
	}
	return PercentTaxFlatShipping{
		TaxPercent:       taxPercent,
		ShippingFlat:     shippingFlat,
		FreeShippingOver: freeShippingOver,
	}
}
