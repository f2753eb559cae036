package models

const (
	EventPlacedOrder    = "Placed Order"
	EventOrderedProduct = "Ordered Product"
)

type OrderEvent struct {
	Token              string             `json:"token"`
	Event              string             `json:"event"`
	CustomerProperties CustomerProperties `json:"customer_properties"`
	Properties         OrderProperties    `json:"properties"`
	Time               int64              `json:"time"`
}

type ProductEvent struct {
	Token              string            `json:"token"`
	Event              string            `json:"event"`
	CustomerProperties CustomerIdentity  `json:"customer_properties"`
	Properties         ProductProperties `json:"properties"`
}

type CustomerIdentity struct {
	Email     string `json:"$email"`
	FirstName string `json:"$first_name"`
	LastName  string `json:"$last_name"`
}

// CustomerProperties keys other than the identity are omitted when the
// source value is absent.
type CustomerProperties struct {
	CustomerIdentity
	Phone    *string `json:"$phone_number,omitempty"`
	Address1 *string `json:"$address1,omitempty"`
	Address2 *string `json:"$address2,omitempty"`
	City     *string `json:"$city,omitempty"`
	Zip      *string `json:"$zip,omitempty"`
	Region   *string `json:"$region,omitempty"`
	Country  *string `json:"$country,omitempty"`
}

type OrderProperties struct {
	EventID         int64          `json:"$event_id"`
	Value           float64        `json:"$value"`
	ItemNames       []string       `json:"ItemNames"`
	DiscountCodes   []DiscountCode `json:"DiscountCode"`
	DiscountValue   float64        `json:"DiscountValue"`
	Items           []ItemSummary  `json:"Items"`
	BillingAddress  *EventAddress  `json:"BillingAddress,omitempty"`
	ShippingAddress *EventAddress  `json:"ShippingAddress,omitempty"`
}

type ItemSummary struct {
	ProductID   *int64 `json:"ProductID,omitempty"`
	SKU         string `json:"SKU"`
	ProductName string `json:"ProductName"`
	Quantity    int    `json:"Quantity"`
	// ItemPrice is a number, or the item's display name in legacy mode.
	ItemPrice any `json:"ItemPrice"`
}

type EventAddress struct {
	FirstName   *string `json:"FirstName,omitempty"`
	LastName    *string `json:"LastName,omitempty"`
	Company     *string `json:"Company,omitempty"`
	Address1    *string `json:"Address1,omitempty"`
	Address2    *string `json:"Address2,omitempty"`
	City        *string `json:"City,omitempty"`
	Region      *string `json:"Region,omitempty"`
	RegionCode  *string `json:"RegionCode,omitempty"`
	Country     *string `json:"Country,omitempty"`
	CountryCode *string `json:"CountryCode,omitempty"`
	Zip         *string `json:"Zip,omitempty"`
	Phone       *string `json:"Phone,omitempty"`
}

type ProductProperties struct {
	EventID     int64   `json:"$event_id"`
	Value       float64 `json:"$value"`
	ProductID   *int64  `json:"ProductID,omitempty"`
	SKU         string  `json:"SKU"`
	ProductName string  `json:"ProductName"`
	Quantity    int     `json:"Quantity"`
}

// OrderProductGroup ties product events back to the order they came from.
type OrderProductGroup struct {
	OrderID  int64          `json:"order_id"`
	Products []ProductEvent `json:"body"`
}
