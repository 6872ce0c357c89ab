// internal/domain/library/recorder.go
package library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Recorder persists game ownership records
type Recorder struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewRecorder creates a new library recorder
func NewRecorder(db *gorm.DB, logger *logrus.Logger) *Recorder {
	return &Recorder{
		db:     db,
		logger: logger,
	}
}

// AddPurchasedGames records ownership for each purchased game. Games the
// user already owns are skipped, so calling this twice with overlapping
// items never creates duplicates. Returns the number of entries inserted.
//
// The entry's Price field is recorded as 0 rather than the paid price;
// the original storefront behaves the same way and downstream screens
// only read the field informationally.
func (r *Recorder) AddPurchasedGames(ctx context.Context, userID uint, items []PurchasedItem) (int, error) {
	// One date for the whole batch
	dateAdded := time.Now().UTC().Format("2006-01-02")

	added := 0
	alreadyOwned := 0

	for _, item := range items {
		owned, err := r.Contains(ctx, userID, item.ProductID)
		if err != nil {
			return added, err
		}
		if owned {
			alreadyOwned++
			continue
		}

		entry := Entry{
			UserID:    userID,
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     0.0,
			DateAdded: dateAdded,
			Status:    StatusAvailable,
			Genre:     GuessGenre(item.Title),
		}

		if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
			return added, fmt.Errorf("failed to insert library entry for %s: %w", item.ProductID, err)
		}
		added++
	}

	r.logger.WithFields(logrus.Fields{
		"user_id":       userID,
		"added":         added,
		"already_owned": alreadyOwned,
	}).Info("Recorded purchased games in library")

	return added, nil
}

// Contains reports whether the user already owns a game
func (r *Recorder) Contains(ctx context.Context, userID uint, productID string) (bool, error) {
	var entry Entry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check library entry: %w", err)
	}
	return true, nil
}

// Entries returns all games a user owns, most recent first
func (r *Recorder) Entries(ctx context.Context, userID uint) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve library entries: %w", err)
	}
	return entries, nil
}

// UpdateStatus moves an owned game to a new install state
func (r *Recorder) UpdateStatus(ctx context.Context, userID uint, productID string, status Status) error {
	result := r.db.WithContext(ctx).
		Model(&Entry{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update library entry status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("library entry not found")
	}
	return nil
}
