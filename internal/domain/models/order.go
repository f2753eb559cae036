package models

import "github.com/shopspring/decimal"

// RawOrder is a Shopify order as returned by the Admin REST API. Only the
// fields the sync reads are decoded.
type RawOrder struct {
	ID              int64           `json:"id" validate:"required"`
	FinancialStatus string          `json:"financial_status"`
	CreatedAt       string          `json:"created_at"`
	Customer        *Customer       `json:"customer" validate:"required"`
	BillingAddress  *Address        `json:"billing_address"`
	ShippingAddress *Address        `json:"shipping_address"`
	LineItems       []LineItem      `json:"line_items" validate:"required,min=1,dive"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	TotalDiscounts  decimal.Decimal `json:"total_discounts"`
	DiscountCodes   []DiscountCode  `json:"discount_codes"`
}

type Customer struct {
	Email          string   `json:"email"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Phone          *string  `json:"phone"`
	DefaultAddress *Address `json:"default_address"`
}

// Address fields are pointers: a key that is missing and a key that is
// explicitly null both decode to nil.
type Address struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Company      *string `json:"company"`
	Address1     *string `json:"address1"`
	Address2     *string `json:"address2"`
	City         *string `json:"city"`
	Province     *string `json:"province"`
	ProvinceCode *string `json:"province_code"`
	Country      *string `json:"country"`
	CountryCode  *string `json:"country_code"`
	CountryName  *string `json:"country_name"`
	Zip          *string `json:"zip"`
	Phone        *string `json:"phone"`
}

type LineItem struct {
	ID        int64           `json:"id" validate:"required"`
	ProductID *int64          `json:"product_id"`
	SKU       string          `json:"sku"`
	Title     string          `json:"title"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type DiscountCode struct {
	Code   string `json:"code"`
	Amount string `json:"amount"`
	Type   string `json:"type"`
}

type FinancialStatus = string

const (
	FinancialStatusPaid              FinancialStatus = "paid"
	FinancialStatusPartiallyPaid     FinancialStatus = "partially_paid"
	FinancialStatusRefunded          FinancialStatus = "refunded"
	FinancialStatusPartiallyRefunded FinancialStatus = "partially_refunded"
	FinancialStatusPending           FinancialStatus = "pending"
)
