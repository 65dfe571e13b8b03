package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"griddle/app/auth"
	"griddle/app/models"
	"griddle/app/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "routes-test-secret"

func setupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func setupTestServer(t *testing.T) (*mux.Router, *badger.DB) {
	db := setupTestDB(t)
	log := logrus.New()
	log.SetOutput(io.Discard)
	tokens := auth.NewTokenManager(testSecret)
	return SetupRoutes(db, tokens, log), db
}

// createAdmin seeds an admin user directly in storage, mirroring the
// out-of-band init-admin bootstrap.
func createAdmin(t *testing.T, db *badger.DB, username, password string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	require.NoError(t, repositories.NewBadgerUserRepository(db).Create(user))
	return user
}

func doJSON(t *testing.T, router *mux.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

// createAdminPromote promotes an existing user to admin directly in
// storage, mirroring out-of-band role administration.
func createAdminPromote(t *testing.T, db *badger.DB, username string) {
	repo := repositories.NewBadgerUserRepository(db)
	user, err := repo.GetByUsername(username)
	require.NoError(t, err)
	require.NoError(t, repo.SetRole(user.ID, models.RoleAdmin))
}

// login returns a bearer token for the given credentials.
func login(t *testing.T, router *mux.Router, username, password string) string {
	rec := doJSON(t, router, "POST", "/api/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}
