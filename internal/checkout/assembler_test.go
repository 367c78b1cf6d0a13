package checkout

import (
	"strings"
	"testing"

	"github.com/gereacosta1/OnePointMotors/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAssembler() *Assembler {
	return NewAssembler(Config{
		BaseURL:      "https://shop.example.com",
		MerchantName: "EcoRide",
	})
}

func twoItemCart() []domain.CartItem {
	return []domain.CartItem{
		{ID: "1", Name: "Pro Max", Price: 1299, Image: "/IMG/pro-max.jpeg", Slug: "pro-max", Quantity: 1},
		{ID: "2", Name: "Sport", Price: 1599, Image: "/IMG/sport.jpeg", Slug: "sport", Quantity: 1},
	}
}

func janeDoe() domain.Buyer {
	return domain.Buyer{Name: "Jane Doe", Email: "jane@x.com"}
}

func TestBuildPayload_EmptyCartRejected(t *testing.T) {
	a := testAssembler()

	_, err := a.BuildPayload(nil, janeDoe())
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = a.BuildPayload([]domain.CartItem{}, janeDoe())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuildPayload_BuyerValidation(t *testing.T) {
	a := testAssembler()
	items := twoItemCart()

	_, err := a.BuildPayload(items, domain.Buyer{Name: "", Email: "jane@x.com"})
	assert.ErrorIs(t, err, ErrBuyerRequired)

	_, err = a.BuildPayload(items, domain.Buyer{Name: "Jane Doe", Email: ""})
	assert.ErrorIs(t, err, ErrBuyerRequired)

	_, err = a.BuildPayload(items, domain.Buyer{Name: "Jane Doe", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrBuyerRequired)
}

func TestBuildPayload_MoneyComputation(t *testing.T) {
	a := testAssembler()

	payload, err := a.BuildPayload(twoItemCart(), janeDoe())
	require.NoError(t, err)

	// subtotal 2898: tax = round(2898*0.08*100), total = round(2898*1.08*100)
	assert.Equal(t, int64(23184), payload.TaxAmount)
	assert.Equal(t, int64(312984), payload.Total)
	assert.Equal(t, int64(0), payload.ShippingAmount)

	require.Len(t, payload.Items, 2)
	assert.Equal(t, int64(129900), payload.Items[0].UnitPrice)
	assert.Equal(t, int64(159900), payload.Items[1].UnitPrice)
}

func TestBuildPayload_QuantityMultipliesSubtotal(t *testing.T) {
	a := testAssembler()
	items := []domain.CartItem{
		{ID: "1", Name: "Pro Max", Price: 1299, Slug: "pro-max", Quantity: 2},
	}

	payload, err := a.BuildPayload(items, janeDoe())
	require.NoError(t, err)

	// subtotal 2598
	assert.Equal(t, int64(20784), payload.TaxAmount)
	assert.Equal(t, int64(280584), payload.Total)
	assert.Equal(t, 2, payload.Items[0].Qty)
}

// Tax and total are rounded independently, so the total can be off by one
// cent from subtotal+tax. Kept as-is; see DESIGN.md.
func TestBuildPayload_RoundingIsIndependent(t *testing.T) {
	a := testAssembler()
	items := []domain.CartItem{
		{ID: "1", Name: "Widget", Price: 1.005, Slug: "widget", Quantity: 1},
	}

	payload, err := a.BuildPayload(items, janeDoe())
	require.NoError(t, err)

	assert.Equal(t, int64(100), payload.Items[0].UnitPrice)
	assert.Equal(t, int64(8), payload.TaxAmount)
	assert.Equal(t, int64(109), payload.Total)
	assert.NotEqual(t, payload.Items[0].UnitPrice+payload.TaxAmount, payload.Total)
}

func TestBuildPayload_NameSplitting(t *testing.T) {
	a := testAssembler()
	items := twoItemCart()

	payload, err := a.BuildPayload(items, domain.Buyer{Name: "Ana Maria Lopez", Email: "ana@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", payload.Shipping.Name.First)
	assert.Equal(t, "Maria Lopez", payload.Shipping.Name.Last)

	payload, err = a.BuildPayload(items, domain.Buyer{Name: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", payload.Billing.Name.First)
	assert.Equal(t, "", payload.Billing.Name.Last)
}

func TestBuildPayload_AddressDefaults(t *testing.T) {
	a := testAssembler()

	payload, err := a.BuildPayload(twoItemCart(), janeDoe())
	require.NoError(t, err)

	assert.Equal(t, "123 Main St", payload.Shipping.Address.Line1)
	assert.Equal(t, "Miami", payload.Shipping.Address.City)
	assert.Equal(t, "FL", payload.Shipping.Address.State)
	assert.Equal(t, "33132", payload.Shipping.Address.Zipcode)
	assert.Equal(t, "USA", payload.Shipping.Address.Country)
	assert.Equal(t, "5551234567", payload.Billing.PhoneNumber)
	assert.Equal(t, payload.Shipping.Address, payload.Billing.Address)
}

func TestBuildPayload_BuyerAddressUsedWhenPresent(t *testing.T) {
	a := testAssembler()
	buyer := domain.Buyer{
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Phone:   "3051234567",
		Address: "42 Ocean Dr",
		City:    "Orlando",
		State:   "FL",
		Zipcode: "32801",
	}

	payload, err := a.BuildPayload(twoItemCart(), buyer)
	require.NoError(t, err)

	assert.Equal(t, "42 Ocean Dr", payload.Shipping.Address.Line1)
	assert.Equal(t, "Orlando", payload.Shipping.Address.City)
	assert.Equal(t, "32801", payload.Shipping.Address.Zipcode)
	assert.Equal(t, "3051234567", payload.Billing.PhoneNumber)
}

func TestBuildPayload_MerchantAndItemURLs(t *testing.T) {
	a := testAssembler()

	payload, err := a.BuildPayload(twoItemCart(), janeDoe())
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com/confirmation", payload.Merchant.UserConfirmationURL)
	assert.Equal(t, "https://shop.example.com/catalogo", payload.Merchant.UserCancelURL)
	assert.Equal(t, "POST", payload.Merchant.UserConfirmationURLAction)
	assert.Equal(t, "EcoRide", payload.Merchant.Name)
	assert.Equal(t, "https://shop.example.com/producto/pro-max", payload.Items[0].ItemURL)
	assert.Equal(t, "1", payload.Items[0].SKU)
	assert.Equal(t, "Pro Max", payload.Items[0].DisplayName)
}

func TestBuildPayload_OrderIDs(t *testing.T) {
	a := testAssembler()

	first, err := a.BuildPayload(twoItemCart(), janeDoe())
	require.NoError(t, err)
	second, err := a.BuildPayload(twoItemCart(), janeDoe())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first.OrderID, "ECO-"))
	assert.NotEqual(t, first.OrderID, second.OrderID)
	assert.Equal(t, first.OrderID, first.Metadata["order_id"])
	assert.Equal(t, "jane@x.com", first.Metadata["customer_id"])
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Ana Maria Lopez")
	assert.Equal(t, "Ana", first)
	assert.Equal(t, "Maria Lopez", last)

	first, last = splitName("  Ana   Maria  ")
	assert.Equal(t, "Ana", first)
	assert.Equal(t, "Maria", last)

	first, last = splitName("")
	assert.Equal(t, "", first)
	assert.Equal(t, "", last)
}
