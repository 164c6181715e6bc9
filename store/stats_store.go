package store

import (
	"database/sql"

	"github.com/nzzzzzw/COMP4537-AI-Project/models"
)

// StatsStore tracks per-endpoint request counts.
type StatsStore struct {
	DB *sql.DB
}

func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{DB: db}
}

// Track increments the counter for a (method, endpoint) pair, creating the
// row on first sight.
func (s *StatsStore) Track(method, endpoint string) error {
	query := `INSERT INTO api_stats (method, endpoint, requests) VALUES (?, ?, 1)
			  ON CONFLICT (method, endpoint)
			  DO UPDATE SET requests = requests + 1, updated_at = CURRENT_TIMESTAMP`
	_, err := s.DB.Exec(query, method, endpoint)
	return err
}

// List returns all endpoint counters, busiest first.
func (s *StatsStore) List() ([]models.ApiStat, error) {
	query := `SELECT id, method, endpoint, requests, created_at, updated_at
			  FROM api_stats ORDER BY requests DESC, endpoint ASC`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []models.ApiStat{}
	for rows.Next() {
		var stat models.ApiStat
		if err := rows.Scan(
			&stat.ID,
			&stat.Method,
			&stat.Endpoint,
			&stat.Requests,
			&stat.CreatedAt,
			&stat.UpdatedAt,
		); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}
