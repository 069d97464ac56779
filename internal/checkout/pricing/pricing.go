// Package pricing computes checkout line items and totals under a
// checkout's pricing mode.
package pricing

import (
	"fmt"

	configdomain "github.com/elzapay/elza/internal/checkoutconfig/domain"
	productdomain "github.com/elzapay/elza/internal/product/domain"
)

// DefaultCurrency labels an empty cart's total.
const DefaultCurrency = "USDC"

type LineItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
	Currency  string  `json:"currency"`
}

type Quote struct {
	LineItems []LineItem `json:"line_items"`
	Total     float64    `json:"total"`
	// Currency is the first line's currency, DefaultCurrency when the
	// cart is empty. Amounts are never converted between currencies.
	Currency string `json:"currency"`
}

// UnitPrice picks the price field the checkout's mode reads. A
// subscription checkout reads subscriptionPrice whenever the product has
// one, regardless of the product's own type.
func UnitPrice(p *productdomain.Product, checkoutType configdomain.CheckoutType) float64 {
	if checkoutType == configdomain.CheckoutSubscription && p.SubscriptionPrice != nil {
		return *p.SubscriptionPrice
	}
	return p.Price
}

// ClampQuantity floors quantities at 1; decrementing past 1 is a no-op.
func ClampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// ComputeTotal prices each product under the checkout's mode and sums the
// lines. quantities is keyed by product id; absent entries default to 1.
// When quantitySelectable is false every line is priced at quantity 1.
func ComputeTotal(products []productdomain.Product, checkoutType configdomain.CheckoutType, quantities map[string]int, quantitySelectable bool) Quote {
	quote := Quote{
		LineItems: make([]LineItem, 0, len(products)),
		Currency:  DefaultCurrency,
	}

	for i := range products {
		p := &products[i]

		quantity := 1
		if quantitySelectable {
			if q, ok := quantities[p.ID.String()]; ok {
				quantity = ClampQuantity(q)
			}
		}

		unit := UnitPrice(p, checkoutType)
		line := LineItem{
			ProductID: p.ID.String(),
			Name:      p.Name,
			UnitPrice: unit,
			Quantity:  quantity,
			LineTotal: unit * float64(quantity),
			Currency:  p.Currency,
		}
		quote.LineItems = append(quote.LineItems, line)
		quote.Total += line.LineTotal
	}

	if len(quote.LineItems) > 0 {
		quote.Currency = quote.LineItems[0].Currency
	}
	return quote
}

// FormatAmount renders an amount with exactly two decimal places.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
