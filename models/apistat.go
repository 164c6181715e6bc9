package models

import "time"

// ApiStat counts how many requests each API endpoint has received.
type ApiStat struct {
	ID        uint      `json:"id"`
	Method    string    `json:"method"`
	Endpoint  string    `json:"endpoint"`
	Requests  int       `json:"requests"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
