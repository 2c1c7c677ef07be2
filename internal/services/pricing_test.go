package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/example/sufra/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPriceItemWithOptionExtra(t *testing.T) {
	item := HydratedItem{
		Product:  models.Product{NameEn: "Margherita Pizza", Price: dec("15.00")},
		Quantity: 2,
		Selections: []Selection{
			{Option: models.ProductOption{NameEn: "Large", ExtraPrice: dec("2.00")}},
		},
	}

	ip := PriceItem(item)

	assert.True(t, ip.BasePrice.Equal(dec("15.00")), "base %s", ip.BasePrice)
	assert.True(t, ip.OptionsTotal.Equal(dec("2.00")), "options %s", ip.OptionsTotal)
	assert.True(t, ip.UnitPrice.Equal(dec("17.00")), "unit %s", ip.UnitPrice)
	assert.True(t, ip.LineTotal.Equal(dec("34.00")), "line %s", ip.LineTotal)
}

func TestPriceItemNoOptions(t *testing.T) {
	item := HydratedItem{
		Product:  models.Product{NameEn: "Garden Salad", Price: dec("8.50")},
		Quantity: 3,
	}

	ip := PriceItem(item)

	assert.True(t, ip.OptionsTotal.IsZero())
	assert.True(t, ip.UnitPrice.Equal(dec("8.50")))
	assert.True(t, ip.LineTotal.Equal(dec("25.50")), "line %s", ip.LineTotal)
}

func TestPriceItemFreeOption(t *testing.T) {
	item := HydratedItem{
		Product:  models.Product{Price: dec("15.00")},
		Quantity: 1,
		Selections: []Selection{
			{Option: models.ProductOption{NameEn: "Small", ExtraPrice: dec("0.00")}},
		},
	}

	ip := PriceItem(item)
	assert.True(t, ip.LineTotal.Equal(dec("15.00")))
}

func TestPriceCartSumsLinesAndPreparationTime(t *testing.T) {
	cart := &HydratedCart{
		Items: []HydratedItem{
			{
				Product:  models.Product{Price: dec("15.00"), EstimatedPreparationTime: 10},
				Quantity: 2,
				Selections: []Selection{
					{Option: models.ProductOption{ExtraPrice: dec("2.00")}},
				},
			},
			{
				Product:  models.Product{Price: dec("8.50"), EstimatedPreparationTime: 5},
				Quantity: 1,
			},
		},
	}

	pricing := PriceCart(cart)

	assert.True(t, pricing.TotalPrice.Equal(dec("42.50")), "total %s", pricing.TotalPrice)
	assert.Equal(t, 25, pricing.PreparationMinutes)
	assert.Len(t, pricing.Items, 2)
}

func TestPriceCartEmpty(t *testing.T) {
	pricing := PriceCart(&HydratedCart{})

	assert.True(t, pricing.TotalPrice.IsZero())
	assert.Equal(t, 0, pricing.PreparationMinutes)
}
