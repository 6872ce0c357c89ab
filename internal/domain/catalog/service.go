// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrGameNotFound is returned when a product ID does not match an active game
var ErrGameNotFound = errors.New("game not found")

// Service handles catalog queries
type Service struct {
	db *gorm.DB
}

// NewService creates a new catalog service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db: db,
	}
}

// ListRequest represents catalog list query parameters
type ListRequest struct {
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=20"`
	Genre    string `form:"genre"`
	Featured bool   `form:"featured"`
	Search   string `form:"search"`
}

// ListResponse represents a catalog page with pagination
type ListResponse struct {
	Games      []Game     `json:"games"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// List retrieves active games with filtering and pagination
func (s *Service) List(req *ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Game{}).Where("is_active = ?", true)

	if req.Genre != "" {
		query = query.Where("genre = ?", req.Genre)
	}
	if req.Featured {
		query = query.Where("is_featured = ?", true)
	}
	if req.Search != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+req.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count games: %w", err)
	}

	var games []Game
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("is_featured DESC, title ASC").Offset(offset).Limit(req.Limit).Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve games: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListResponse{
		Games: games,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// Get retrieves a single active game by its product ID
func (s *Service) Get(productID string) (*Game, error) {
	var game Game
	err := s.db.Where("product_id = ? AND is_active = ?", productID, true).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game: %w", err)
	}
	return &game, nil
}

// Genres returns the distinct genres present in the active catalog
func (s *Service) Genres() ([]string, error) {
	var genres []string
	err := s.db.Model(&Game{}).
		Where("is_active = ?", true).
		Distinct("genre").
		Order("genre ASC").
		Pluck("genre", &genres).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve genres: %w", err)
	}
	return genres, nil
}
