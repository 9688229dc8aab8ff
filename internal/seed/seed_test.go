package seed

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library-tracker/internal/database"
	"github.com/mrlokans/library-tracker/internal/entities"
	"github.com/mrlokans/library-tracker/internal/library"
)

func setupTestService(t *testing.T) (*library.Service, *database.Database, func()) {
	t.Helper()

	dbPath := "./test_seed_" + t.Name() + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	service := library.NewService(db, 14)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return service, db, cleanup
}

func TestRun_SeedsFullCatalog(t *testing.T) {
	service, db, cleanup := setupTestService(t)
	defer cleanup()

	created, err := Run(service)
	require.NoError(t, err)
	assert.Equal(t, len(Catalog), created)

	var count int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&count).Error)
	assert.Equal(t, int64(len(Catalog)), count)
}

func TestRun_Idempotent(t *testing.T) {
	service, db, cleanup := setupTestService(t)
	defer cleanup()

	_, err := Run(service)
	require.NoError(t, err)

	// Second run skips every title and creates nothing
	created, err := Run(service)
	require.NoError(t, err)
	assert.Zero(t, created)

	var count int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&count).Error)
	assert.Equal(t, int64(len(Catalog)), count)
}

func TestRun_SkipsOnlyExistingTitles(t *testing.T) {
	service, db, cleanup := setupTestService(t)
	defer cleanup()

	// Pre-insert one catalog title by hand
	_, err := service.AddBook(Catalog[0].Title, Catalog[0].Author, Catalog[0].Year)
	require.NoError(t, err)

	created, err := Run(service)
	require.NoError(t, err)
	assert.Equal(t, len(Catalog)-1, created)

	var count int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&count).Error)
	assert.Equal(t, int64(len(Catalog)), count)
}
