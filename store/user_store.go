package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/nzzzzzw/COMP4537-AI-Project/models"
	"github.com/nzzzzzw/COMP4537-AI-Project/utils"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("username or email already exists")
)

const userColumns = `id, username, email, password_hash, is_admin, api_calls,
	reset_token_hash, reset_token_expiry, created_at, updated_at`

// UserStore owns all raw SQL touching the users table. Passwords are hashed
// here, at the only two write paths that accept a raw password, and are never
// stored or logged in raw form.
type UserStore struct {
	DB *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{DB: db}
}

// Create inserts a new user with a freshly hashed password. The first account
// ever registered becomes the admin.
func (s *UserStore) Create(username, email, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	var count int
	if err := s.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return nil, err
	}
	isAdmin := count == 0

	insertQuery := `INSERT INTO users (username, email, password_hash, is_admin)
					VALUES (?, ?, ?, ?)`

	res, err := s.DB.Exec(insertQuery, username, email, hash, isAdmin)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return s.FindByID(uint(id))
}

func (s *UserStore) FindByID(id uint) (*models.User, error) {
	return s.findOne(`SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id)
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	return s.findOne(`SELECT `+userColumns+` FROM users WHERE email = ? LIMIT 1`, email)
}

// FindByResetTokenHash returns the user holding an unexpired reset token with
// the given digest. Expired or unknown tokens are both ErrNotFound, so the
// caller cannot tell the two cases apart.
func (s *UserStore) FindByResetTokenHash(hash string, now time.Time) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
			  WHERE reset_token_hash = ? AND reset_token_expiry > ? LIMIT 1`
	return s.findOne(query, hash, now.UTC())
}

func (s *UserStore) findOne(query string, args ...interface{}) (*models.User, error) {
	var user models.User
	err := s.DB.QueryRow(query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.APICalls,
		&user.ResetTokenHash,
		&user.ResetTokenExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users, newest first.
func (s *UserStore) List() ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, id DESC`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.IsAdmin,
			&user.APICalls,
			&user.ResetTokenHash,
			&user.ResetTokenExpiry,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Delete removes a user record. ErrNotFound if the id does not exist.
func (s *UserStore) Delete(id uint) error {
	res, err := s.DB.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetResetToken stores the digest and expiry of a freshly issued reset token.
func (s *UserStore) SetResetToken(id uint, tokenHash string, expiry time.Time) error {
	query := `UPDATE users SET reset_token_hash = ?, reset_token_expiry = ?,
			  updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := s.DB.Exec(query, tokenHash, expiry.UTC(), id)
	return err
}

// ClearResetToken removes both reset fields, e.g. after the reset email could
// not be delivered.
func (s *UserStore) ClearResetToken(id uint) error {
	query := `UPDATE users SET reset_token_hash = NULL, reset_token_expiry = NULL,
			  updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := s.DB.Exec(query, id)
	return err
}

// ResetPassword sets a new hashed password and clears the reset-token fields
// in a single statement, so the token cannot be replayed once used.
func (s *UserStore) ResetPassword(id uint, newPassword string) error {
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	query := `UPDATE users SET password_hash = ?, reset_token_hash = NULL,
			  reset_token_expiry = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err = s.DB.Exec(query, hash, id)
	return err
}

// IncrementAPICalls bumps the user's call counter by one and returns the new
// value. The increment is a single UPDATE so concurrent requests for the same
// user cannot lose updates.
func (s *UserStore) IncrementAPICalls(id uint) (int, error) {
	query := `UPDATE users SET api_calls = api_calls + 1,
			  updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := s.DB.Exec(query, id)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, ErrNotFound
	}

	var calls int
	if err := s.DB.QueryRow(`SELECT api_calls FROM users WHERE id = ?`, id).Scan(&calls); err != nil {
		return 0, err
	}
	return calls, nil
}
