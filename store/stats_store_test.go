package store_test

import (
	"testing"

	"github.com/nzzzzzw/COMP4537-AI-Project/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackUpsertsCounters(t *testing.T) {
	stats := store.NewStatsStore(newTestDB(t))

	require.NoError(t, stats.Track("POST", "/api/auth/login"))
	require.NoError(t, stats.Track("POST", "/api/auth/login"))
	require.NoError(t, stats.Track("GET", "/api/auth/users"))

	list, err := stats.List()
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Busiest endpoint first.
	assert.Equal(t, "/api/auth/login", list[0].Endpoint)
	assert.Equal(t, "POST", list[0].Method)
	assert.Equal(t, 2, list[0].Requests)
	assert.Equal(t, "/api/auth/users", list[1].Endpoint)
	assert.Equal(t, 1, list[1].Requests)
}

func TestTrackSeparatesMethods(t *testing.T) {
	stats := store.NewStatsStore(newTestDB(t))

	require.NoError(t, stats.Track("GET", "/api/auth/users"))
	require.NoError(t, stats.Track("DELETE", "/api/auth/users"))

	list, err := stats.List()
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
