// internal/domain/cart/store.go
package cart

import (
	"sync"
	"time"
)

// User-facing storefront messages (the shop ships in Spanish)
const (
	MsgItemAdded          = "Juego añadido al carrito"
	MsgLicenseCapExceeded = "No puedes comprar más de 3 licencias por compra"
)

// Store holds the cart for a single storefront session. All mutations go
// through the Store so the license cap can never be observed as violated:
// the cap check and the mutation happen under the same lock.
type Store struct {
	mu         sync.Mutex
	lines      []Line
	errorMsg   string
	successMsg string
}

// NewStore creates an empty cart store
func NewStore() *Store {
	return &Store{}
}

// AddItem adds one license of a game to the cart. Adding a game that is
// already in the cart increments its quantity instead of appending a new
// line. Returns false when the license cap would be exceeded; the cart is
// left unchanged in that case.
func (s *Store) AddItem(productID, title string, unitPrice float64, imageURL string, originalPrice *float64, discountPct int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.totalQuantityLocked() >= MaxLicensesPerPurchase {
		s.errorMsg = MsgLicenseCapExceeded
		s.successMsg = ""
		return false
	}

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity++
			s.errorMsg = ""
			s.successMsg = MsgItemAdded
			return true
		}
	}

	s.lines = append(s.lines, Line{
		ProductID:     productID,
		Title:         title,
		UnitPrice:     unitPrice,
		ImageURL:      imageURL,
		OriginalPrice: originalPrice,
		DiscountPct:   discountPct,
		Quantity:      1,
	})
	s.errorMsg = ""
	s.successMsg = MsgItemAdded
	return true
}

// UpdateQuantity sets the quantity of a cart line. A quantity of zero or
// less removes the line. Returns false when the new quantity would push the
// cart past the license cap; nothing is mutated in that case.
func (s *Store) UpdateQuantity(productID string, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
		return true
	}

	otherQuantity := 0
	for _, line := range s.lines {
		if line.ProductID != productID {
			otherQuantity += line.Quantity
		}
	}

	if otherQuantity+quantity > MaxLicensesPerPurchase {
		s.errorMsg = MsgLicenseCapExceeded
		return false
	}

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = quantity
			break
		}
	}
	s.errorMsg = ""
	return true
}

// RemoveItem drops a line from the cart unconditionally
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
}

// Clear empties the cart unconditionally
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Contains reports whether a game is already in the cart
func (s *Store) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range s.lines {
		if line.ProductID == productID {
			return true
		}
	}
	return false
}

// TotalQuantity returns the sum of all line quantities
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalQuantityLocked()
}

// TotalPrice returns the cart total at current (possibly discounted) prices
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPriceLocked()
}

// Lines returns a copy of the cart lines in insertion order
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLinesLocked()
}

// Snapshot captures the current cart state for checkout. The snapshot is
// detached from the store: later cart mutations do not affect it.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.copyLinesLocked()
	return Snapshot{
		Lines: lines,
		Totals: Totals{
			LineCount:     len(lines),
			TotalQuantity: s.totalQuantityLocked(),
			TotalPrice:    s.totalPriceLocked(),
		},
		CapturedAt: time.Now().UTC(),
	}
}

// Messages returns the single-slot success and error messages. Each
// operation overwrites the previous messages; they are not queued.
func (s *Store) Messages() (success, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.successMsg, s.errorMsg
}

// ClearMessages resets both message slots, typically after the UI has
// shown them once
func (s *Store) ClearMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.successMsg = ""
	s.errorMsg = ""
}

func (s *Store) removeLocked(productID string) {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

func (s *Store) totalQuantityLocked() int {
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

func (s *Store) totalPriceLocked() float64 {
	var total float64
	for _, line := range s.lines {
		total += line.LineTotal()
	}
	return total
}

func (s *Store) copyLinesLocked() []Line {
	return append([]Line(nil), s.lines...)
}
