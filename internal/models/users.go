package models

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// InsertUser registers a new account with an empty cart, wishlist and
// rating history. The email must not be in use.
func (m *MongoDB) InsertUser(ctx context.Context, name, email, password, companyName string) error {
	count, err := m.Users.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}

	user := User{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Email:       email,
		Password:    string(hashed),
		CompanyName: companyName,
		Products:    []ProductRef{},
		Cart:        Cart{Items: []CartItem{}, TotalPrice: 0},
		WishList:    []WishItem{},
		TotalRating: 0,
		Ratings:     []SellerRating{},
	}

	_, err = m.Users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

// Authenticate checks the email/password pair and returns the account.
func (m *MongoDB) Authenticate(ctx context.Context, email, password string) (*User, error) {
	var user User
	err := m.Users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &user, nil
}

func (m *MongoDB) GetUser(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var user User
	err := m.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (m *MongoDB) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := m.Users.CountDocuments(ctx, bson.M{"email": email})
	return count > 0, err
}

// UpdateCart persists the user's cart and running total in one write.
func (m *MongoDB) UpdateCart(ctx context.Context, userID primitive.ObjectID, cart Cart) error {
	_, err := m.Users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{"cart": cart}})
	return err
}

func (m *MongoDB) UpdateWishList(ctx context.Context, userID primitive.ObjectID, wishList []WishItem) error {
	_, err := m.Users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{"wishList": wishList}})
	return err
}

// PullWishListItem removes a product reference from the wishlist.
// Pulling an absent reference is a no-op.
func (m *MongoDB) PullWishListItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	update := bson.M{"$pull": bson.M{"wishList": bson.M{"productId": productID}}}
	_, err := m.Users.UpdateOne(ctx, bson.M{"_id": userID}, update)
	return err
}

// ClearCart empties the cart after checkout.
func (m *MongoDB) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"cart": Cart{Items: []CartItem{}, TotalPrice: 0}}}
	_, err := m.Users.UpdateOne(ctx, bson.M{"_id": userID}, update)
	return err
}

// CartView is a cart with its product references resolved for display.
type CartView struct {
	Items      []CartLineView `json:"items"`
	TotalPrice float64        `json:"totalPrice"`
}

type CartLineView struct {
	Product  ProductSummary `json:"product"`
	Seller   string         `json:"seller"`
	Quantity int            `json:"quantity"`
}

// WishItemView resolves one wishlist reference for display.
type WishItemView struct {
	ID      primitive.ObjectID `json:"_id"`
	Product ProductSummary     `json:"product"`
}

// GetCart loads the user's cart and resolves each line's product.
// Lines whose product has since been deleted are skipped.
func (m *MongoDB) GetCart(ctx context.Context, userID primitive.ObjectID) (*CartView, error) {
	user, err := m.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(user.Cart.Items))
	for _, item := range user.Cart.Items {
		ids = append(ids, item.ProductID)
	}
	summaries, err := m.productSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: []CartLineView{}, TotalPrice: user.Cart.TotalPrice}
	for _, item := range user.Cart.Items {
		summary, ok := summaries[item.ProductID]
		if !ok {
			continue
		}
		view.Items = append(view.Items, CartLineView{
			Product:  summary,
			Seller:   item.Seller,
			Quantity: item.Quantity,
		})
	}
	return view, nil
}

// GetWishList resolves the user's wishlist references.
func (m *MongoDB) GetWishList(ctx context.Context, userID primitive.ObjectID) ([]WishItemView, error) {
	user, err := m.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(user.WishList))
	for _, item := range user.WishList {
		ids = append(ids, item.ProductID)
	}
	summaries, err := m.productSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := []WishItemView{}
	for _, item := range user.WishList {
		summary, ok := summaries[item.ProductID]
		if !ok {
			continue
		}
		views = append(views, WishItemView{ID: item.ID, Product: summary})
	}
	return views, nil
}

func (m *MongoDB) productSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]ProductSummary, error) {
	summaries := make(map[primitive.ObjectID]ProductSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	cur, err := m.Products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var products []Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	for _, p := range products {
		summaries[p.ID] = ProductSummary{
			ID:            p.ID,
			Name:          p.Name,
			OriginalPrice: p.OriginalPrice,
			OfferPrice:    p.OfferPrice,
			TotalRating:   p.TotalRating,
			RatingCount:   p.RatingCount,
			Category:      p.Category,
			ImageURLs:     p.ImageURLs,
		}
	}
	return summaries, nil
}
