// internal/domain/library/entity.go
package library

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Status represents the install state of an owned game
type Status string

const (
	StatusAvailable   Status = "available"
	StatusDownloading Status = "downloading"
	StatusUpdating    Status = "updating"
	StatusInstalled   Status = "installed"
)

// Entry records that a user owns a game. At most one entry exists per
// (user, game) pair; re-recording a purchase is a no-op.
type Entry struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_library_user_game" json:"user_id"`
	ProductID string         `gorm:"not null;size:100;uniqueIndex:idx_library_user_game" json:"product_id"`
	Title     string         `gorm:"not null;size:255" json:"title"`
	Price     float64        `gorm:"not null;default:0" json:"price"`
	DateAdded string         `gorm:"not null;size:10" json:"date_added"` // YYYY-MM-DD
	Status    Status         `gorm:"not null;default:'available';size:20" json:"status"`
	Genre     string         `gorm:"size:100" json:"genre"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Entry) TableName() string {
	return "library_entries"
}

// PurchasedItem identifies a game bought in a checkout
type PurchasedItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Title     string `json:"title" binding:"required"`
}

// DefaultGenre is used when no franchise keyword matches the title
const DefaultGenre = "Acción"

// genreKeywords maps known franchise keywords to genres. Matching is a
// case-insensitive substring check against the game title.
var genreKeywords = []struct {
	Keyword string
	Genre   string
}{
	{"fifa", "Deportes"},
	{"nba", "Deportes"},
	{"pes", "Deportes"},
	{"call of duty", "Shooter"},
	{"halo", "Shooter"},
	{"doom", "Shooter"},
	{"battlefield", "Shooter"},
	{"zelda", "Aventura"},
	{"uncharted", "Aventura"},
	{"tomb raider", "Aventura"},
	{"mario", "Plataformas"},
	{"sonic", "Plataformas"},
	{"final fantasy", "RPG"},
	{"elden ring", "RPG"},
	{"dark souls", "RPG"},
	{"witcher", "RPG"},
	{"civilization", "Estrategia"},
	{"age of empires", "Estrategia"},
	{"gran turismo", "Carreras"},
	{"forza", "Carreras"},
	{"mario kart", "Carreras"},
	{"minecraft", "Sandbox"},
	{"sims", "Simulación"},
}

// GuessGenre derives a genre from a game title using the franchise keyword
// table, falling back to DefaultGenre
func GuessGenre(title string) string {
	lower := strings.ToLower(title)
	for _, entry := range genreKeywords {
		if strings.Contains(lower, entry.Keyword) {
			return entry.Genre
		}
	}
	return DefaultGenre
}
