package models

import "github.com/shopspring/decimal"

// Token is one tracked cryptocurrency identity. The wallets data file uses
// either `network` or `chain` for the blockchain identifier; both are
// accepted and Network is the normalized field.
type Token struct {
	Slug    string           `json:"slug"`
	Name    string           `json:"name"`
	Symbol  string           `json:"symbol"`
	Network string           `json:"network"`
	Chain   string           `json:"chain,omitempty"`
	Price   *decimal.Decimal `json:"price"`
}
