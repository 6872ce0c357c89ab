// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/gamestore-backend/internal/domain/catalog"
	"github.com/your-org/gamestore-backend/internal/domain/library"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	models := []interface{}{
		&catalog.Game{},
		&library.Entry{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// Catalog indexes
		"CREATE INDEX IF NOT EXISTS idx_games_genre_active ON games(genre, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_games_featured_active ON games(is_featured, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_games_price ON games(price)",

		// Library indexes
		"CREATE INDEX IF NOT EXISTS idx_library_entries_user ON library_entries(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_library_entries_status ON library_entries(status)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts an initial game catalog for development
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedGames(); err != nil {
		return fmt.Errorf("failed to seed games: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedGames() error {
	log.Println("🎮 Seeding game catalog...")

	discount := func(v float64) *float64 { return &v }

	games := []catalog.Game{
		{
			ProductID:   "game-eclipse-vanguard",
			Title:       "Eclipse Vanguard",
			Description: "Shooter táctico por escuadrones con campañas cooperativas.",
			Genre:       "Shooter",
			Price:       49.99,
			ImageURL:    "https://cdn.example.com/games/eclipse-vanguard.jpg",
			Stock:       120,
			IsFeatured:  true,
			IsActive:    true,
		},
		{
			ProductID:     "game-reinos-olvidados",
			Title:         "Reinos Olvidados",
			Description:   "RPG de mundo abierto con más de cien horas de historia.",
			Genre:         "RPG",
			Price:         39.99,
			OriginalPrice: discount(59.99),
			DiscountPct:   33,
			ImageURL:      "https://cdn.example.com/games/reinos-olvidados.jpg",
			Stock:         80,
			IsFeatured:    true,
			IsActive:      true,
		},
		{
			ProductID:   "game-rally-extremo",
			Title:       "Rally Extremo 24",
			Description: "Carreras todoterreno con clima dinámico y ligas online.",
			Genre:       "Carreras",
			Price:       29.99,
			ImageURL:    "https://cdn.example.com/games/rally-extremo.jpg",
			Stock:       200,
			IsActive:    true,
		},
		{
			ProductID:     "game-astro-colonos",
			Title:         "Astro Colonos",
			Description:   "Estrategia espacial por turnos para hasta ocho jugadores.",
			Genre:         "Estrategia",
			Price:         19.99,
			OriginalPrice: discount(24.99),
			DiscountPct:   20,
			ImageURL:      "https://cdn.example.com/games/astro-colonos.jpg",
			Stock:         150,
			IsActive:      true,
		},
		{
			ProductID:   "game-liga-campeones",
			Title:       "Liga de Campeones 2026",
			Description: "Simulador de fútbol con plantillas oficiales actualizadas.",
			Genre:       "Deportes",
			Price:       59.99,
			ImageURL:    "https://cdn.example.com/games/liga-campeones.jpg",
			Stock:       90,
			IsFeatured:  true,
			IsActive:    true,
		},
	}

	for _, game := range games {
		var existing catalog.Game
		result := m.db.Where("product_id = ?", game.ProductID).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&game).Error; err != nil {
				return err
			}
			log.Printf("✅ Created game: %s", game.Title)
		} else {
			log.Printf("⏭️ Game already exists: %s", game.Title)
		}
	}

	return nil
}

// GetTableInfo logs record counts for all public tables
func (m *Migration) GetTableInfo() error {
	var tables []string

	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	log.Println("📊 Database Tables Information:")
	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		log.Printf("%-20s | %d records", table, count)
	}

	return nil
}
