package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCartAddRemoveDelete(t *testing.T) {
	productID := primitive.NewObjectID()
	cart := Cart{Items: []CartItem{}, TotalPrice: 0}

	cart.Apply(CartAdd, productID, 20, "Acme Ltd")
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, "Acme Ltd", cart.Items[0].Seller)
	assert.Equal(t, 20.0, cart.TotalPrice)

	cart.Apply(CartAdd, productID, 20, "Acme Ltd")
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 40.0, cart.TotalPrice)

	cart.Apply(CartRemove, productID, 20, "Acme Ltd")
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, 20.0, cart.TotalPrice)

	cart.Apply(CartDelete, productID, 20, "Acme Ltd")
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestCartRemoveNeverDropsLine(t *testing.T) {
	productID := primitive.NewObjectID()
	cart := Cart{}

	cart.Apply(CartAdd, productID, 15, "Acme Ltd")
	cart.Apply(CartRemove, productID, 15, "Acme Ltd")

	// quantity one stays at one, total untouched
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, 15.0, cart.TotalPrice)
}

func TestCartRemoveAbsentProduct(t *testing.T) {
	cart := Cart{}
	cart.Apply(CartRemove, primitive.NewObjectID(), 10, "Acme Ltd")

	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestCartDeleteAbsentProduct(t *testing.T) {
	cart := Cart{}
	cart.Apply(CartDelete, primitive.NewObjectID(), 10, "Acme Ltd")

	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestCartDeleteSubtractsWholeLine(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	cart := Cart{}

	cart.Apply(CartAdd, first, 20, "Acme Ltd")
	cart.Apply(CartAdd, first, 20, "Acme Ltd")
	cart.Apply(CartAdd, first, 20, "Acme Ltd")
	cart.Apply(CartAdd, second, 5, "Globex")
	assert.Equal(t, 65.0, cart.TotalPrice)

	cart.Apply(CartDelete, first, 20, "Acme Ltd")
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, second, cart.Items[0].ProductID)
	assert.Equal(t, 5.0, cart.TotalPrice)
}

func TestCartTotalMatchesLines(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	prices := map[primitive.ObjectID]float64{a: 12.5, b: 7}
	cart := Cart{}

	ops := []struct {
		code string
		id   primitive.ObjectID
	}{
		{CartAdd, a}, {CartAdd, b}, {CartAdd, a}, {CartAdd, b},
		{CartRemove, b}, {CartAdd, a}, {CartDelete, b},
	}
	for _, op := range ops {
		cart.Apply(op.code, op.id, prices[op.id], "Seller")
	}

	var want float64
	for _, item := range cart.Items {
		want += float64(item.Quantity) * prices[item.ProductID]
	}
	assert.Equal(t, want, cart.TotalPrice)
}

func TestCartClear(t *testing.T) {
	cart := Cart{}
	cart.Apply(CartAdd, primitive.NewObjectID(), 30, "Acme Ltd")

	cart.Clear()
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestAddToWishList(t *testing.T) {
	productID := primitive.NewObjectID()
	user := User{}

	err := user.AddToWishList(productID)
	assert.NoError(t, err)
	assert.Len(t, user.WishList, 1)
	assert.False(t, user.WishList[0].ID.IsZero())

	err = user.AddToWishList(productID)
	assert.ErrorIs(t, err, ErrAlreadyWishlisted)
	assert.Len(t, user.WishList, 1)
}

func TestRemoveFromWishList(t *testing.T) {
	keep := primitive.NewObjectID()
	drop := primitive.NewObjectID()
	user := User{}

	assert.NoError(t, user.AddToWishList(keep))
	assert.NoError(t, user.AddToWishList(drop))

	user.RemoveFromWishList(drop)
	assert.Len(t, user.WishList, 1)
	assert.Equal(t, keep, user.WishList[0].ProductID)

	// removing an absent product is a no-op
	user.RemoveFromWishList(drop)
	assert.Len(t, user.WishList, 1)
}
