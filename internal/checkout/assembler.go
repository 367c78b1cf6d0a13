package checkout

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gereacosta1/OnePointMotors/internal/domain"
	"github.com/google/uuid"
)

// Placeholder address used when the buyer leaves optional fields blank. The
// hosted checkout form collects the real address; requiring them here would
// only block the handoff.
const (
	defaultAddressLine = "123 Main St"
	defaultCity        = "Miami"
	defaultState       = "FL"
	defaultZipcode     = "33132"
	defaultPhone       = "5551234567"
	addressCountry     = "USA"
)

const orderIDPrefix = "ECO"

// Config carries the merchant identity baked into every payload.
type Config struct {
	BaseURL      string
	MerchantName string
}

// Assembler builds provider-ready checkout payloads from cart contents and
// buyer details. It performs no I/O.
type Assembler struct {
	cfg        Config
	newOrderID func() string
}

func NewAssembler(cfg Config) *Assembler {
	return &Assembler{
		cfg:        cfg,
		newOrderID: generateOrderID,
	}
}

// BuildPayload validates the inputs and assembles the checkout request.
// Validation failures abort before anything observable happens.
func (a *Assembler) BuildPayload(items []domain.CartItem, buyer domain.Buyer) (*domain.CheckoutPayload, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if strings.TrimSpace(buyer.Name) == "" || strings.TrimSpace(buyer.Email) == "" ||
		!strings.Contains(buyer.Email, "@") {
		return nil, ErrBuyerRequired
	}

	first, last := splitName(buyer.Name)
	name := domain.PersonName{First: first, Last: last}
	address := domain.Address{
		Line1:   orDefault(buyer.Address, defaultAddressLine),
		City:    orDefault(buyer.City, defaultCity),
		State:   orDefault(buyer.State, defaultState),
		Zipcode: orDefault(buyer.Zipcode, defaultZipcode),
		Country: addressCountry,
	}

	subtotal := 0.0
	payloadItems := make([]domain.PayloadItem, len(items))
	for i, item := range items {
		subtotal += item.Price * float64(item.Quantity)
		payloadItems[i] = domain.PayloadItem{
			DisplayName:  item.Name,
			SKU:          item.ID,
			UnitPrice:    toMinorUnits(item.Price),
			Qty:          item.Quantity,
			ItemImageURL: item.Image,
			ItemURL:      fmt.Sprintf("%s/producto/%s", a.cfg.BaseURL, item.Slug),
		}
	}

	orderID := a.newOrderID()

	return &domain.CheckoutPayload{
		Merchant: domain.Merchant{
			UserConfirmationURL:       a.cfg.BaseURL + "/confirmation",
			UserCancelURL:             a.cfg.BaseURL + "/catalogo",
			UserConfirmationURLAction: "POST",
			Name:                      a.cfg.MerchantName,
		},
		Shipping: domain.AddressBlock{Name: name, Address: address},
		Billing: domain.BillingBlock{
			Name:        name,
			Address:     address,
			PhoneNumber: orDefault(buyer.Phone, defaultPhone),
			Email:       buyer.Email,
		},
		Items:     payloadItems,
		Discounts: map[string]any{},
		Metadata: map[string]string{
			"order_id":    orderID,
			"customer_id": buyer.Email,
		},
		OrderID:        orderID,
		ShippingAmount: 0,
		// Tax and total are rounded independently, so total may differ from
		// subtotal+tax by one cent. Matches the provider contract as deployed;
		// do not "fix" without confirming with the merchant.
		TaxAmount: toMinorUnits(subtotal * 0.08),
		Total:     toMinorUnits(subtotal * 1.08),
	}, nil
}

// splitName splits a full name on whitespace: first word becomes the first
// name, the rest joined by single spaces becomes the last name.
func splitName(full string) (first, last string) {
	words := strings.Fields(full)
	if len(words) == 0 {
		return "", ""
	}
	return words[0], strings.Join(words[1:], " ")
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// toMinorUnits converts a major-unit amount to cents, rounded to nearest.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func generateOrderID() string {
	return fmt.Sprintf("%s-%d-%s", orderIDPrefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}
