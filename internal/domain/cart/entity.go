// internal/domain/cart/entity.go
package cart

import "time"

// MaxLicensesPerPurchase is the maximum total quantity of licenses
// that can be bought in a single checkout.
const MaxLicensesPerPurchase = 3

// Line represents one game selection in the cart
type Line struct {
	ProductID     string   `json:"product_id"`
	Title         string   `json:"title"`
	UnitPrice     float64  `json:"unit_price"`
	ImageURL      string   `json:"image_url,omitempty"`
	OriginalPrice *float64 `json:"original_price,omitempty"` // Set only when a discount applies
	DiscountPct   int      `json:"discount_pct"`
	Quantity      int      `json:"quantity"`
}

// HasDiscount reports whether the line carries an active discount
func (l Line) HasDiscount() bool {
	return l.DiscountPct > 0 && l.OriginalPrice != nil
}

// LineTotal returns the total for this line at the current unit price
func (l Line) LineTotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Totals represents calculated cart totals
type Totals struct {
	LineCount     int     `json:"line_count"`     // Number of unique games
	TotalQuantity int     `json:"total_quantity"` // Sum of all license quantities
	TotalPrice    float64 `json:"total_price"`    // Sum at current unit prices
}

// Snapshot is an immutable copy of the cart state, captured at checkout time
type Snapshot struct {
	Lines      []Line    `json:"lines"`
	Totals     Totals    `json:"totals"`
	CapturedAt time.Time `json:"captured_at"`
}

// IsEmpty reports whether the snapshot holds no lines
func (s Snapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}
