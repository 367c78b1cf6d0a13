package domain

// Buyer carries the contact and address details the shopper submits at
// checkout. Name and Email are required, everything else is optional.
type Buyer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zipcode string `json:"zipcode,omitempty"`
}

// CheckoutPayload is the provider-ready checkout request. Monetary fields are
// integers in minor currency units (cents).
type CheckoutPayload struct {
	Merchant       Merchant          `json:"merchant"`
	Shipping       AddressBlock      `json:"shipping"`
	Billing        BillingBlock      `json:"billing"`
	Items          []PayloadItem     `json:"items"`
	Discounts      map[string]any    `json:"discounts"`
	Metadata       map[string]string `json:"metadata"`
	OrderID        string            `json:"order_id"`
	ShippingAmount int64             `json:"shipping_amount"`
	TaxAmount      int64             `json:"tax_amount"`
	Total          int64             `json:"total"`
}

type Merchant struct {
	UserConfirmationURL       string `json:"user_confirmation_url"`
	UserCancelURL             string `json:"user_cancel_url"`
	UserConfirmationURLAction string `json:"user_confirmation_url_action"`
	Name                      string `json:"name"`
}

type PersonName struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

type Address struct {
	Line1   string `json:"line1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
	Country string `json:"country"`
}

type AddressBlock struct {
	Name    PersonName `json:"name"`
	Address Address    `json:"address"`
}

type BillingBlock struct {
	Name        PersonName `json:"name"`
	Address     Address    `json:"address"`
	PhoneNumber string     `json:"phone_number"`
	Email       string     `json:"email"`
}

// PayloadItem is one line item descriptor in provider format.
type PayloadItem struct {
	DisplayName  string `json:"display_name"`
	SKU          string `json:"sku"`
	UnitPrice    int64  `json:"unit_price"`
	Qty          int    `json:"qty"`
	ItemImageURL string `json:"item_image_url"`
	ItemURL      string `json:"item_url"`
}
