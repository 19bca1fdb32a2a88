package main

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestApplication() *application {
	return &application{
		errorLog:  log.New(io.Discard, "", 0),
		infoLog:   log.New(io.Discard, "", 0),
		jwtSecret: []byte("test-secret"),
		validate:  validator.New(),
	}
}

func signedToken(t *testing.T, secret []byte, userID primitive.ObjectID, expiry time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID.Hex(),
		"email":  "user@example.com",
		"exp":    expiry.Unix(),
	})
	signed, err := token.SignedString(secret)
	assert.NoError(t, err)
	return signed
}

func TestRequireAuthMissingHeader(t *testing.T) {
	app := newTestApplication()
	handler := app.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/userData", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthBadScheme(t *testing.T) {
	app := newTestApplication()
	handler := app.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/userData", nil)
	r.Header.Set("Authorization", "Basic abc123")
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	app := newTestApplication()
	token := signedToken(t, app.jwtSecret, primitive.NewObjectID(), time.Now().Add(-time.Hour))

	handler := app.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/userData", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	app := newTestApplication()
	token := signedToken(t, []byte("other-secret"), primitive.NewObjectID(), time.Now().Add(time.Hour))

	handler := app.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/userData", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	app := newTestApplication()
	userID := primitive.NewObjectID()
	token := signedToken(t, app.jwtSecret, userID, time.Now().Add(time.Hour))

	var got authClaims
	handler := app.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		got = app.auth(r)
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/userData", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, "user@example.com", got.Email)
	assert.False(t, got.Expires.IsZero())
}

func TestRecoverPanic(t *testing.T) {
	app := newTestApplication()
	handler := app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "close", w.Header().Get("Connection"))
}
