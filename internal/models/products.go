package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productsPerPage = 10

// ProductSummary is the projection used by list, cart and wishlist
// responses.
type ProductSummary struct {
	ID            primitive.ObjectID `json:"_id"`
	Name          string             `json:"name"`
	OriginalPrice float64            `json:"originalPrice"`
	OfferPrice    float64            `json:"offerPrice"`
	TotalRating   float64            `json:"totalRating"`
	RatingCount   int                `json:"ratingCount"`
	Category      string             `json:"category"`
	ImageURLs     []Image            `json:"imageUrls"`
}

func (m *MongoDB) GetProduct(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	var p Product
	err := m.Products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProducts returns one page of the catalog, ten products per page.
func (m *MongoDB) GetProducts(ctx context.Context, page int) ([]*Product, error) {
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSkip(int64((page - 1) * productsPerPage)).
		SetLimit(productsPerPage)

	cur, err := m.Products.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []*Product{}
	err = cur.All(ctx, &products)
	return products, err
}

// Category sort orders accepted by GetProductsByCategory.
const (
	SortNewArrivals = "newArrivals"
	SortRatings     = "ratings"
	SortAddedDate   = "addedDate"
)

// GetProductsByCategory lists a category sorted by arrival date or
// rating. Unknown sortBy values fall back to newArrivals.
func (m *MongoDB) GetProductsByCategory(ctx context.Context, category, sortBy string) ([]*Product, error) {
	var sort bson.D
	switch sortBy {
	case SortRatings:
		sort = bson.D{{Key: "totalRating", Value: -1}, {Key: "ratingCount", Value: -1}}
	case SortAddedDate:
		sort = bson.D{{Key: "createdAt", Value: 1}}
	default:
		sort = bson.D{{Key: "createdAt", Value: -1}}
	}

	opts := options.Find().
		SetSort(sort).
		SetProjection(bson.M{
			"imageUrls": 1, "originalPrice": 1, "offerPrice": 1,
			"totalRating": 1, "name": 1, "ratingCount": 1, "category": 1,
		})

	cur, err := m.Products.Find(ctx, bson.M{"category": category}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []*Product{}
	err = cur.All(ctx, &products)
	return products, err
}

// GetSlideshow returns up to ten image/price projections for a
// category's slideshow strip.
func (m *MongoDB) GetSlideshow(ctx context.Context, category string) ([]*Product, error) {
	opts := options.Find().
		SetLimit(10).
		SetProjection(bson.M{"imageUrls": 1, "originalPrice": 1, "offerPrice": 1})

	cur, err := m.Products.Find(ctx, bson.M{"category": category}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []*Product{}
	err = cur.All(ctx, &products)
	return products, err
}

// SearchProducts matches the term against the product-name text index
// and as a case-insensitive prefix, sorted by text score.
func (m *MongoDB) SearchProducts(ctx context.Context, term string) ([]*Product, error) {
	if term == "" {
		return []*Product{}, nil
	}

	filter := bson.M{"$or": bson.A{
		bson.M{"$text": bson.M{"$search": term}},
		bson.M{"name": bson.M{"$regex": "^" + term, "$options": "i"}},
	}}
	opts := options.Find().
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetProjection(bson.M{
			"name": 1, "category": 1, "totalRating": 1,
			"ratingCount": 1, "offerPrice": 1, "imageUrls": 1,
			"score": bson.M{"$meta": "textScore"},
		})

	cur, err := m.Products.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []*Product{}
	err = cur.All(ctx, &products)
	return products, err
}

// GetProductsBySeller lists a seller's own products for their admin
// page.
func (m *MongoDB) GetProductsBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*Product, error) {
	opts := options.Find().SetProjection(bson.M{
		"name": 1, "createdAt": 1, "updatedAt": 1, "imageUrls": 1,
	})

	cur, err := m.Products.Find(ctx, bson.M{"userId": sellerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []*Product{}
	err = cur.All(ctx, &products)
	return products, err
}

// InsertProduct stores a new listing and records the reference on the
// seller's document.
func (m *MongoDB) InsertProduct(ctx context.Context, p *Product) error {
	now := time.Now()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := m.Products.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	_, err = m.Users.UpdateOne(ctx, bson.M{"_id": p.UserID},
		bson.M{"$push": bson.M{"products": ProductRef{ProductID: p.ID}}})
	return err
}

// DeleteProduct removes the document and returns it so the caller can
// clean up the stored images.
func (m *MongoDB) DeleteProduct(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	var p Product
	err := m.Products.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveRatings persists a product mutated by AddRating or AddReply.
// The whole document is written back; there is no field-level update
// for the thread.
func (m *MongoDB) SaveRatings(ctx context.Context, p *Product) error {
	p.UpdatedAt = time.Now()
	_, err := m.Products.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	return err
}

// SellerProfile is the seller slice of a product-detail response.
type SellerProfile struct {
	Email       string         `json:"email"`
	CompanyName string         `json:"companyName"`
	Ratings     []SellerRating `json:"ratings"`
}

// RatingThreadView is one thread entry with user names resolved.
type RatingThreadView struct {
	ID       primitive.ObjectID `json:"_id"`
	Rating   float64            `json:"rating"`
	Title    string             `json:"title"`
	Creation time.Time          `json:"creation"`
	UserID   primitive.ObjectID `json:"userId"`
	UserName string             `json:"userName"`
	Comment  string             `json:"comment"`
	Reply    []ReplyView        `json:"reply"`
}

type ReplyView struct {
	UserID   primitive.ObjectID `json:"userId"`
	UserName string             `json:"userName"`
	Message  string             `json:"message"`
}

// ProductDetail is the single-product response: the document, its
// seller's public profile, and the rating thread with names resolved.
type ProductDetail struct {
	Product
	Seller  SellerProfile      `json:"seller"`
	Ratings []RatingThreadView `json:"ratings"`
}

// GetProductDetail resolves the product, its seller, and the display
// names of everyone in the rating thread.
func (m *MongoDB) GetProductDetail(ctx context.Context, id primitive.ObjectID) (*ProductDetail, error) {
	p, err := m.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	seller, err := m.GetUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	ids := []primitive.ObjectID{}
	for _, entry := range p.Ratings {
		ids = append(ids, entry.UserID)
		for _, reply := range entry.Comments.Reply {
			ids = append(ids, reply.UserID)
		}
	}
	names, err := m.userNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	thread := []RatingThreadView{}
	for _, entry := range p.Ratings {
		view := RatingThreadView{
			ID:       entry.ID,
			Rating:   entry.Rating,
			Title:    entry.Title,
			Creation: entry.Creation,
			UserID:   entry.UserID,
			UserName: names[entry.UserID],
			Comment:  entry.Comments.Message,
			Reply:    []ReplyView{},
		}
		for _, reply := range entry.Comments.Reply {
			view.Reply = append(view.Reply, ReplyView{
				UserID:   reply.UserID,
				UserName: names[reply.UserID],
				Message:  reply.Message,
			})
		}
		thread = append(thread, view)
	}

	return &ProductDetail{
		Product: *p,
		Seller: SellerProfile{
			Email:       seller.Email,
			CompanyName: seller.CompanyName,
			Ratings:     seller.Ratings,
		},
		Ratings: thread,
	}, nil
}

func (m *MongoDB) userNames(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	names := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1})
	cur, err := m.Users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}
