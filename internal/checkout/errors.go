package checkout

import "errors"

var (
	ErrEmptyCart       = errors.New("no items to checkout")
	ErrBuyerRequired   = errors.New("buyer information required")
	ErrUnknownCheckout = errors.New("no pending checkout for token")
)
