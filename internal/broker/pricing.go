package broker

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Pricing struct {
	BundleSize int
	PriceMinor int64
	Currency   string
}

// DisplayPrice — "$10.00" для usd, "10.00 EUR" для остальных
func (p Pricing) DisplayPrice() string {
	amount := decimal.New(p.PriceMinor, -2).StringFixed(2)
	if strings.EqualFold(p.Currency, "usd") {
		return "$" + amount
	}
	return amount + " " + strings.ToUpper(p.Currency)
}
