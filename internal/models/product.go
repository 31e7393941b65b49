package models

import "github.com/shopspring/decimal"

// Product weights are grams; MakingChargesPerGram is in the backend's
// currency unit.
type Product struct {
	ID                   string   `json:"_id"`
	Name                 string   `json:"name"`
	SKU                  string   `json:"sku"`
	Description          string   `json:"description"`
	CategoryID           string   `json:"categoryId"`
	Weight               float64  `json:"weight"`
	Purity               string   `json:"purity"`
	MakingChargesPerGram float64  `json:"makingChargesPerGram"`
	IsActive             bool     `json:"isActive"`
	Images               []string `json:"images"`
}

func (p Product) EntityID() string { return p.ID }

// MakingCharges is weight times the per-gram making charge, rounded to paise.
func (p Product) MakingCharges() decimal.Decimal {
	weight := decimal.NewFromFloat(p.Weight)
	rate := decimal.NewFromFloat(p.MakingChargesPerGram)
	return weight.Mul(rate).Round(2)
}

// ProductInput is the create/update payload. A nil Images keeps whatever the
// product currently references.
type ProductInput struct {
	Name                 string   `json:"name"`
	SKU                  string   `json:"sku"`
	Description          string   `json:"description"`
	CategoryID           string   `json:"categoryId"`
	Weight               float64  `json:"weight"`
	Purity               string   `json:"purity"`
	MakingChargesPerGram float64  `json:"makingChargesPerGram"`
	IsActive             bool     `json:"isActive"`
	Images               []string `json:"images"`
}
