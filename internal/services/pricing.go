package services

import "github.com/shopspring/decimal"

// ItemPricing is the price breakdown of one cart line.
type ItemPricing struct {
	BasePrice    decimal.Decimal
	OptionsTotal decimal.Decimal
	UnitPrice    decimal.Decimal
	LineTotal    decimal.Decimal
}

// CartPricing is the authoritative total for a whole cart.
type CartPricing struct {
	TotalPrice         decimal.Decimal
	PreparationMinutes int
	Items              []ItemPricing
}

// PriceItem computes one line: (base price + selected option extras) x quantity.
// Input must already be validated; prices come from the hydrated entities,
// never from the client.
func PriceItem(item HydratedItem) ItemPricing {
	optionsTotal := decimal.Zero
	for _, sel := range item.Selections {
		optionsTotal = optionsTotal.Add(sel.Option.ExtraPrice)
	}

	unitPrice := item.Product.Price.Add(optionsTotal)

	return ItemPricing{
		BasePrice:    item.Product.Price,
		OptionsTotal: optionsTotal,
		UnitPrice:    unitPrice,
		LineTotal:    unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}
}

// PriceCart totals every line and sums preparation time. Preparation time
// scales with quantity: two pizzas take twice as long as one.
func PriceCart(cart *HydratedCart) CartPricing {
	pricing := CartPricing{
		TotalPrice: decimal.Zero,
		Items:      make([]ItemPricing, 0, len(cart.Items)),
	}

	for _, item := range cart.Items {
		ip := PriceItem(item)
		pricing.TotalPrice = pricing.TotalPrice.Add(ip.LineTotal)
		pricing.PreparationMinutes += item.Product.EstimatedPreparationTime * item.Quantity
		pricing.Items = append(pricing.Items, ip)
	}

	return pricing
}
