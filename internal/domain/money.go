package domain

import "github.com/shopspring/decimal"

// Money and rates are exchanged as JSON numbers, not quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
