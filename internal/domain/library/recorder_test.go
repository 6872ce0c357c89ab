// internal/domain/library/recorder_test.go
package library

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRecorder(t *testing.T) *Recorder {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Entry{}))

	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewRecorder(db, log)
}

func TestAddPurchasedGamesInsertsEntries(t *testing.T) {
	recorder := setupTestRecorder(t)
	ctx := context.Background()

	added, err := recorder.AddPurchasedGames(ctx, 7, []PurchasedItem{
		{ProductID: "g1", Title: "Eclipse Vanguard"},
		{ProductID: "g2", Title: "FIFA 26"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, added)

	entries, err := recorder.Entries(ctx, 7)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, entry := range entries {
		assert.Equal(t, uint(7), entry.UserID)
		assert.Equal(t, StatusAvailable, entry.Status)
		assert.Zero(t, entry.Price)
		assert.Equal(t, time.Now().UTC().Format("2006-01-02"), entry.DateAdded)
	}
}

func TestAddPurchasedGamesSkipsOwnedGames(t *testing.T) {
	recorder := setupTestRecorder(t)
	ctx := context.Background()

	first, err := recorder.AddPurchasedGames(ctx, 7, []PurchasedItem{
		{ProductID: "g1", Title: "Eclipse Vanguard"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, first)

	// Overlapping batch: g1 is already owned, only g2 is new
	second, err := recorder.AddPurchasedGames(ctx, 7, []PurchasedItem{
		{ProductID: "g1", Title: "Eclipse Vanguard"},
		{ProductID: "g2", Title: "Rally Extremo 24"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second)

	entries, err := recorder.Entries(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAddPurchasedGamesIsPerUser(t *testing.T) {
	recorder := setupTestRecorder(t)
	ctx := context.Background()

	_, err := recorder.AddPurchasedGames(ctx, 7, []PurchasedItem{{ProductID: "g1", Title: "Eclipse Vanguard"}})
	require.NoError(t, err)

	added, err := recorder.AddPurchasedGames(ctx, 8, []PurchasedItem{{ProductID: "g1", Title: "Eclipse Vanguard"}})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	owned, err := recorder.Contains(ctx, 8, "g1")
	require.NoError(t, err)
	assert.True(t, owned)

	owned, err = recorder.Contains(ctx, 9, "g1")
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestAddPurchasedGamesAssignsGenres(t *testing.T) {
	recorder := setupTestRecorder(t)
	ctx := context.Background()

	_, err := recorder.AddPurchasedGames(ctx, 7, []PurchasedItem{
		{ProductID: "g1", Title: "FIFA 26 Ultimate Edition"},
		{ProductID: "g2", Title: "The Witcher 3"},
		{ProductID: "g3", Title: "Juego Desconocido"},
	})
	require.NoError(t, err)

	genres := map[string]string{}
	entries, err := recorder.Entries(ctx, 7)
	require.NoError(t, err)
	for _, entry := range entries {
		genres[entry.ProductID] = entry.Genre
	}

	assert.Equal(t, "Deportes", genres["g1"])
	assert.Equal(t, "RPG", genres["g2"])
	assert.Equal(t, DefaultGenre, genres["g3"])
}

func TestUpdateStatus(t *testing.T) {
	recorder := setupTestRecorder(t)
	ctx := context.Background()

	_, err := recorder.AddPurchasedGames(ctx, 7, []PurchasedItem{{ProductID: "g1", Title: "Eclipse Vanguard"}})
	require.NoError(t, err)

	require.NoError(t, recorder.UpdateStatus(ctx, 7, "g1", StatusDownloading))

	entries, err := recorder.Entries(ctx, 7)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, StatusDownloading, entries[0].Status)
}

func TestUpdateStatusUnknownEntry(t *testing.T) {
	recorder := setupTestRecorder(t)

	err := recorder.UpdateStatus(context.Background(), 7, "missing", StatusInstalled)

	require.Error(t, err)
}

func TestGuessGenre(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Call of Duty: Nueva Era", "Shooter"},
		{"Super Mario Galaxy", "Plataformas"},
		{"MARIO KART DELUXE", "Plataformas"}, // first keyword match wins
		{"Final Fantasy XVIII", "RPG"},
		{"Civilization VII", "Estrategia"},
		{"Forza Horizon 6", "Carreras"},
		{"Minecraft Legends", "Sandbox"},
		{"Los Sims 5", "Simulación"},
		{"Aventura Sin Marca", DefaultGenre},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GuessGenre(tt.title), tt.title)
	}
}
