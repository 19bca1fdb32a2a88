package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/saifibne/ecommerce-api/internal/models"
)

type fakeCheckoutStore struct {
	insertErr error
	clearErr  error
	inserted  []models.Order
	buyerID   primitive.ObjectID
	cleared   []primitive.ObjectID
}

func (f *fakeCheckoutStore) InsertOrders(ctx context.Context, buyerID primitive.ObjectID, orders []models.Order) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.buyerID = buyerID
	f.inserted = append(f.inserted, orders...)
	return nil
}

func (f *fakeCheckoutStore) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = append(f.cleared, userID)
	return nil
}

func orderRequest(t *testing.T, buyerID primitive.ObjectID, lines []orderLineRequest) *http.Request {
	t.Helper()
	body, err := json.Marshal(lines)
	assert.NoError(t, err)

	r := httptest.NewRequest("POST", "/order", bytes.NewReader(body))
	ctx := context.WithValue(r.Context(), authContextKey, authClaims{UserID: buyerID})
	return r.WithContext(ctx)
}

func testOrderLines(n int) []orderLineRequest {
	lines := make([]orderLineRequest, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, orderLineRequest{
			ProductID:    primitive.NewObjectID(),
			Price:        20,
			Name:         "test product",
			DeliveryDate: time.Now().Add(72 * time.Hour),
			Seller:       "Acme Ltd",
			ImageURL:     "https://images.example.com/p.webp",
			Quantity:     1,
		})
	}
	return lines
}

func TestPlaceOrderSnapshotsThenClearsCart(t *testing.T) {
	app := newTestApplication()
	store := &fakeCheckoutStore{}
	app.checkout = store

	buyerID := primitive.NewObjectID()
	lines := testOrderLines(3)

	w := httptest.NewRecorder()
	app.placeOrder(w, orderRequest(t, buyerID, lines))

	assert.Equal(t, http.StatusOK, w.Code)
	// one snapshot per submitted line, all for the buyer
	assert.Len(t, store.inserted, 3)
	assert.Equal(t, buyerID, store.buyerID)
	for i, order := range store.inserted {
		assert.Equal(t, lines[i].ProductID, order.ProductID)
		assert.Equal(t, lines[i].Price, order.Price)
		assert.Equal(t, lines[i].Seller, order.Seller)
		assert.Equal(t, lines[i].Quantity, order.Quantity)
	}
	assert.Equal(t, []primitive.ObjectID{buyerID}, store.cleared)
}

func TestPlaceOrderInsertFailureLeavesCart(t *testing.T) {
	app := newTestApplication()
	store := &fakeCheckoutStore{insertErr: errors.New("insert failed")}
	app.checkout = store

	w := httptest.NewRecorder()
	app.placeOrder(w, orderRequest(t, primitive.NewObjectID(), testOrderLines(2)))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// cart must never be cleared when snapshots were not persisted
	assert.Empty(t, store.cleared)
	assert.Empty(t, store.inserted)
}

func TestPlaceOrderEmptyArrayStillClearsCart(t *testing.T) {
	app := newTestApplication()
	store := &fakeCheckoutStore{}
	app.checkout = store

	buyerID := primitive.NewObjectID()

	w := httptest.NewRecorder()
	app.placeOrder(w, orderRequest(t, buyerID, []orderLineRequest{}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.inserted)
	assert.Equal(t, []primitive.ObjectID{buyerID}, store.cleared)
}

func TestPlaceOrderRejectsInvalidLine(t *testing.T) {
	app := newTestApplication()
	store := &fakeCheckoutStore{}
	app.checkout = store

	lines := testOrderLines(1)
	lines[0].Quantity = 0

	w := httptest.NewRecorder()
	app.placeOrder(w, orderRequest(t, primitive.NewObjectID(), lines))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.inserted)
	assert.Empty(t, store.cleared)
}

func TestAddCommentRequestAllowsZeroRating(t *testing.T) {
	app := newTestApplication()

	req := addCommentRequest{Title: "meh", Comment: "not great", Rating: 0}
	assert.NoError(t, app.validate.Struct(req))

	assert.Error(t, app.validate.Struct(addCommentRequest{Title: "t", Comment: "c", Rating: -1}))
	assert.Error(t, app.validate.Struct(addCommentRequest{Title: "t", Comment: "c", Rating: 5.5}))
}
