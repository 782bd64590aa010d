package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"notetaking-be/internal/bootstrap"
	"notetaking-be/internal/config"
	"notetaking-be/internal/entity"
	"notetaking-be/internal/pkg/logger"
	"notetaking-be/internal/pkg/testdb"
	"notetaking-be/internal/repository/unitofwork"
	"notetaking-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db := testdb.New(t)
	log := logger.NewNopLogger()

	uow := unitofwork.NewRepositoryFactory(db, events.NewDispatcher(), log).NewUnitOfWork(context.Background())
	user := &entity.User{Username: "quinntyne"}
	require.NoError(t, user.SetPassword("P@ssw0rd"))
	uow.Users().Add(user)
	_, err := uow.SaveChanges(context.Background())
	require.NoError(t, err)

	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			HubLogFilePath:     filepath.Join(t.TempDir(), "hub.log"),
			CorsAllowedOrigins: "http://localhost:4200",
			IntegrationTopic:   "integration_events",
		},
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			TokenLifetime:   time.Hour,
			SessionCacheTTL: time.Minute,
		},
	}
	container := bootstrap.NewContainer(context.Background(), db, cfg, log)
	t.Cleanup(container.Close)

	return New(cfg, container).GetApp()
}

func call(t *testing.T, app *fiber.App, method, path, token, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func signIn(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, env := call(t, app, http.MethodPost, "/api/users/token", "", `{"username":"quinntyne","password":"P@ssw0rd"}`)
	require.Equal(t, http.StatusOK, status)

	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func TestNotesRequireToken(t *testing.T) {
	app := newTestApp(t)

	status, env := call(t, app, http.MethodGet, "/api/notes", "", "")

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)

	status, _ = call(t, app, http.MethodGet, "/api/notes", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestTokenRejectsBadPassword(t *testing.T) {
	app := newTestApp(t)

	status, _ := call(t, app, http.MethodPost, "/api/users/token", "", `{"username":"quinntyne","password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestNoteLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := signIn(t, app)

	status, env := call(t, app, http.MethodPost, "/api/tags", token, `{"tag":{"tag_id":0,"name":"Angular"}}`)
	require.Equal(t, http.StatusOK, status, env.Message)

	status, env = call(t, app, http.MethodPost, "/api/notes", token, `{"note":{"title":"Hello World","body":"<p>hi</p>","tags":[{"tag_id":1}]}}`)
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.JSONEq(t, `{"note_id":1}`, string(env.Data))

	status, env = call(t, app, http.MethodGet, "/api/notes/slug/hello-world", token, "")
	require.Equal(t, http.StatusOK, status)
	var got struct {
		Note struct {
			Title   string `json:"title"`
			Version int    `json:"version"`
			Tags    []struct {
				Name string `json:"name"`
			} `json:"tags"`
		} `json:"note"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Hello World", got.Note.Title)
	assert.Equal(t, 1, got.Note.Version)
	require.Len(t, got.Note.Tags, 1)
	assert.Equal(t, "Angular", got.Note.Tags[0].Name)

	status, _ = call(t, app, http.MethodPost, "/api/notes", token, `{"note":{"note_id":1,"title":"Edited","version":1}}`)
	require.Equal(t, http.StatusOK, status)

	status, env = call(t, app, http.MethodPost, "/api/notes", token, `{"note":{"note_id":1,"title":"Stale","version":1}}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, env.Success)

	status, _ = call(t, app, http.MethodDelete, "/api/notes/1", token, "")
	require.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, http.MethodGet, "/api/notes/1", token, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, env = call(t, app, http.MethodGet, "/api/notes", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"notes":[]}`, string(env.Data))
}

func TestErrorMapping(t *testing.T) {
	app := newTestApp(t)
	token := signIn(t, app)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "missing fields", method: http.MethodPost, path: "/api/notes", body: `{"note":{"version":-1}}`, want: http.StatusBadRequest},
		{name: "malformed body", method: http.MethodPost, path: "/api/notes", body: `{"note":`, want: http.StatusBadRequest},
		{name: "non numeric id", method: http.MethodGet, path: "/api/notes/abc", want: http.StatusBadRequest},
		{name: "unknown note", method: http.MethodGet, path: "/api/notes/99", want: http.StatusNotFound},
		{name: "unknown tag", method: http.MethodDelete, path: "/api/tags/99", want: http.StatusNotFound},
		{name: "unknown tag on note", method: http.MethodPost, path: "/api/notes", body: `{"note":{"title":"x","tags":[{"tag_id":5}]}}`, want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := call(t, app, tt.method, tt.path, token, tt.body)
			assert.Equal(t, tt.want, status)
			assert.Equal(t, tt.want, env.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestValidationListsEveryFailure(t *testing.T) {
	app := newTestApp(t)
	token := signIn(t, app)

	status, env := call(t, app, http.MethodPost, "/api/notes", token, `{"note":{"version":-1}}`)

	require.Equal(t, http.StatusBadRequest, status)
	var failures []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &failures))
	assert.Len(t, failures, 2)
}

func TestSignOutRevokesToken(t *testing.T) {
	app := newTestApp(t)
	token := signIn(t, app)

	status, _ := call(t, app, http.MethodPost, "/api/users/signout", token, "")
	require.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, http.MethodGet, "/api/tags", token, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}
