package metrics

import (
	"testing"

	"github.com/mauv0809/courtside/internal/database"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (UsageStore, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	teardown := func() {
		dbTeardown()
		db.Close()
	}
	return New(db), teardown
}

func TestIncrementAndGetAll(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	counters, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, counters)

	store.Increment("statistics-saved")
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"statistics-saved": 1}, counters)

	store.Increment("statistics-saved")
	store.Increment("game-scored")
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"statistics-saved": 2,
		"game-scored":      1,
	}, counters)
}

func TestServiceCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)

	svc.IncStatChanges(DirectionIncrement)
	svc.IncStatChanges(DirectionIncrement)
	svc.IncStatChanges(DirectionDecrement)
	svc.IncSubstitutions()
	svc.SetOpenSessions(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(svc.StatChanges.WithLabelValues(DirectionIncrement)))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.StatChanges.WithLabelValues(DirectionDecrement)))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.Substitutions))
	assert.Equal(t, 3.0, testutil.ToFloat64(svc.OpenSessions))
}
