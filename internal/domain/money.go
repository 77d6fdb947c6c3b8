package domain

import "github.com/shopspring/decimal"

func init() {
	// prices are emitted as JSON numbers, matching what clients send
	decimal.MarshalJSONWithoutQuotes = true
}

func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
