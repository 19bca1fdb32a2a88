package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/saifibne/ecommerce-api/internal/models"
)

// imageStore is the slice of the object store the handlers need.
type imageStore interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, string, error)
	Delete(ctx context.Context, key string) error
}

// checkoutStore is the slice of the database checkout needs. Snapshot
// persistence and cart clearing sit behind one seam so the
// clear-only-after-persist policy can be exercised directly.
type checkoutStore interface {
	InsertOrders(ctx context.Context, buyerID primitive.ObjectID, orders []models.Order) error
	ClearCart(ctx context.Context, userID primitive.ObjectID) error
}

func (app *application) serverError(w http.ResponseWriter, err error) {
	trace := fmt.Sprintf("%s\n%s", err.Error(), debug.Stack())
	app.errorLog.Output(2, trace)

	app.writeJSON(w, http.StatusInternalServerError, envelope{"message": "server error occurred"})
}

func (app *application) clientError(w http.ResponseWriter, status int, message string) {
	app.writeJSON(w, status, envelope{"message": message})
}

type envelope map[string]interface{}

func (app *application) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		app.errorLog.Println(err)
	}
}

// readJSON decodes the request body into dst and runs the validator
// tags on it. Validation failures are client errors, never faults.
func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		app.clientError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	err = app.validate.Struct(dst)
	if err != nil {
		app.clientError(w, http.StatusBadRequest, "some validation error occurred")
		return false
	}
	return true
}

// domainError maps the model error taxonomy onto response statuses.
// Anything unrecognized is a storage failure.
func (app *application) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNoRecord):
		app.clientError(w, http.StatusNotFound, "can't find the requested record")
	case errors.Is(err, models.ErrInvalidCredentials):
		app.clientError(w, http.StatusUnauthorized, "email or password doesn't match")
	case errors.Is(err, models.ErrDuplicateEmail):
		app.clientError(w, http.StatusConflict, "email address already registered")
	case errors.Is(err, models.ErrDuplicateRating):
		app.clientError(w, http.StatusConflict, "you already commented")
	case errors.Is(err, models.ErrDuplicateReply):
		app.clientError(w, http.StatusConflict, "you already added reply")
	case errors.Is(err, models.ErrAlreadyWishlisted):
		app.clientError(w, http.StatusConflict, "item already wishlisted")
	default:
		app.serverError(w, err)
	}
}

func (app *application) auth(r *http.Request) authClaims {
	auth, _ := r.Context().Value(authContextKey).(authClaims)
	return auth
}
