// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Game represents a game on sale in the storefront catalog
type Game struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ProductID     string         `gorm:"uniqueIndex;not null;size:100" json:"product_id"`
	Title         string         `gorm:"not null;size:255" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Genre         string         `gorm:"size:100;index" json:"genre"`
	Price         float64        `gorm:"not null" json:"price"`
	OriginalPrice *float64       `json:"original_price,omitempty"` // Set only while a discount runs
	DiscountPct   int            `gorm:"default:0" json:"discount_pct"`
	ImageURL      string         `gorm:"size:512" json:"image_url"`
	Stock         int            `gorm:"default:0" json:"stock"`
	IsFeatured    bool           `gorm:"default:false" json:"is_featured"`
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Game) TableName() string {
	return "games"
}

// HasDiscount reports whether the game is currently discounted
func (g *Game) HasDiscount() bool {
	return g.DiscountPct > 0 && g.OriginalPrice != nil
}
