package models

import (
	"database/sql"
	"time"
)

type User struct {
	ID               uint           `json:"id"`
	Username         string         `json:"username"`
	Email            string         `json:"email"`
	PasswordHash     string         `json:"-"`
	IsAdmin          bool           `json:"isAdmin"`
	APICalls         int            `json:"apiCalls"`
	ResetTokenHash   sql.NullString `json:"-"`
	ResetTokenExpiry sql.NullTime   `json:"-"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}
