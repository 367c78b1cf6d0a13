package checkout

import (
	"sync"
	"time"
)

// pendingTTL bounds how long an initiated checkout waits for the provider's
// confirmation. The hosted flow takes minutes; anything older is abandoned.
const pendingTTL = time.Hour

// PendingCheckout correlates an initiated checkout with the session whose
// cart it came from. The cart is cleared only when the provider confirms
// this exact attempt.
type PendingCheckout struct {
	OrderID       string
	SessionID     string
	CheckoutToken string
	CreatedAt     time.Time
}

// Tracker is the registry of checkouts awaiting provider confirmation,
// keyed by order id and indexed by checkout token for the redirect callback.
// Entries past pendingTTL are dropped, so abandoned checkouts do not pile up.
type Tracker struct {
	m       sync.Mutex
	ttl     time.Duration
	byOrder map[string]PendingCheckout
	byToken map[string]string // checkout token -> order id
}

func NewTracker() *Tracker {
	return &Tracker{
		ttl:     pendingTTL,
		byOrder: make(map[string]PendingCheckout),
		byToken: make(map[string]string),
	}
}

func (t *Tracker) Register(p PendingCheckout) {
	t.m.Lock()
	defer t.m.Unlock()

	t.sweep()
	t.byOrder[p.OrderID] = p
	t.byToken[p.CheckoutToken] = p.OrderID
}

// ResolveToken looks up the pending checkout the provider's redirect refers
// to. An expired entry is treated as unknown and removed.
func (t *Tracker) ResolveToken(checkoutToken string) (PendingCheckout, bool) {
	t.m.Lock()
	defer t.m.Unlock()

	orderID, ok := t.byToken[checkoutToken]
	if !ok {
		return PendingCheckout{}, false
	}
	p, ok := t.byOrder[orderID]
	if !ok {
		return PendingCheckout{}, false
	}
	if t.expired(p) {
		t.remove(p)
		return PendingCheckout{}, false
	}
	return p, true
}

func (t *Tracker) Drop(orderID string) {
	t.m.Lock()
	defer t.m.Unlock()

	if p, ok := t.byOrder[orderID]; ok {
		t.remove(p)
	}
}

func (t *Tracker) expired(p PendingCheckout) bool {
	return time.Since(p.CreatedAt) > t.ttl
}

// sweep drops every expired entry. Callers hold the lock.
func (t *Tracker) sweep() {
	for _, p := range t.byOrder {
		if t.expired(p) {
			t.remove(p)
		}
	}
}

func (t *Tracker) remove(p PendingCheckout) {
	delete(t.byToken, p.CheckoutToken)
	delete(t.byOrder, p.OrderID)
}
