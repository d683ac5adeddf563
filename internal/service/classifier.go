package service

import (
	"strings"

	"github.com/bytefit/storefront/internal/billing"
	"github.com/bytefit/storefront/internal/domain"
)

// DefaultShippingName labels the shipping line when no reconciled item
// matched the shipping heuristics.
const DefaultShippingName = "Shipping"

// shippingKeywords mark a reconciled line item as the shipping charge.
// Matching is case-insensitive substring search on the description.
var shippingKeywords = []string{"shipping", "delivery", "handling"}

// ClassifiedItems is the result of splitting a session's reconciled
// line items back into products and the shipping charge.
type ClassifiedItems struct {
	Products     []domain.ProductLine
	ShippingCost int64
	ShippingName string
}

// ClassifyLineItems separates reconciled line items into product lines
// and a single shipping line. At most one shipping line is expected
// per session; if several items match, the last one wins. Product
// order is preserved.
//
// Known limitation: a product whose real name contains a trigger word
// ("Delivery Box Organizer") is misclassified as shipping. The gateway
// folds shipping in as a generic line item, so there is no type tag to
// rely on.
func ClassifyLineItems(items []billing.ReconciledLineItem) ClassifiedItems {
	out := ClassifiedItems{
		Products:     []domain.ProductLine{},
		ShippingName: DefaultShippingName,
	}

	for _, item := range items {
		if isShippingLine(item.Description) {
			out.ShippingCost = item.AmountTotal
			out.ShippingName = item.Description
			continue
		}

		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		out.Products = append(out.Products, domain.ProductLine{
			Name:      item.Description,
			UnitPrice: item.AmountTotal / qty,
			Quantity:  qty,
		})
	}

	return out
}

func isShippingLine(description string) bool {
	desc := strings.ToLower(description)
	for _, kw := range shippingKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}
