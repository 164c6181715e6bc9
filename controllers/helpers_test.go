package controllers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/nzzzzzw/COMP4537-AI-Project/config"
	"github.com/nzzzzzw/COMP4537-AI-Project/routes"
	"github.com/nzzzzzw/COMP4537-AI-Project/store"
	"github.com/stretchr/testify/require"
)

// fakeMailer records the reset link instead of talking to SMTP.
type fakeMailer struct {
	lastTo  string
	lastURL string
	err     error
}

func (m *fakeMailer) SendResetPasswordEmail(to, resetURL string) error {
	if m.err != nil {
		return m.err
	}
	m.lastTo = to
	m.lastURL = resetURL
	return nil
}

type testApp struct {
	app    *fiber.App
	db     *sql.DB
	users  *store.UserStore
	mailer *fakeMailer
	cfg    *config.Config
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{
		Environment:    "development",
		JWTSecret:      "test-secret",
		FrontendURL:    "http://localhost:3000",
		APICallLimit:   20,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}

	db, err := config.Connect(":memory:")
	require.NoError(t, err)
	// Every pooled connection would get its own empty in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	mailer := &fakeMailer{}
	return &testApp{
		app:    routes.SetupRouter(cfg, db, mailer),
		db:     db,
		users:  store.NewUserStore(db),
		mailer: mailer,
		cfg:    cfg,
	}
}

type requestOption func(*http.Request)

func withBearer(token string) requestOption {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

func withCookie(value string) requestOption {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "jwt", Value: value})
	}
}

// request runs one round trip through the app and decodes the JSON body.
func (ta *testApp) request(t *testing.T, method, path string, body interface{}, opts ...requestOption) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

// requestList is request for endpoints returning a JSON array.
func (ta *testApp) requestList(t *testing.T, method, path string, opts ...requestOption) (*http.Response, []map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	for _, opt := range opts {
		opt(req)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded []map[string]interface{}
	if len(raw) > 0 && raw[0] == '[' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

// register creates an account and returns its id and session token.
func (ta *testApp) register(t *testing.T, username, email, password string) (uint, string) {
	t.Helper()

	resp, body := ta.request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	id, ok := body["id"].(float64)
	require.True(t, ok, "register response must carry the user id")

	var token string
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "jwt" {
			token = cookie.Value
		}
	}
	require.NotEmpty(t, token, "register must set the jwt cookie")

	return uint(id), token
}
