package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	CompanyName string             `bson:"companyName" json:"companyName"`
	Products    []ProductRef       `bson:"products" json:"products"`
	Cart        Cart               `bson:"cart" json:"cart"`
	WishList    []WishItem         `bson:"wishList" json:"wishList"`
	TotalRating float64            `bson:"totalRating" json:"totalRating"`
	Ratings     []SellerRating     `bson:"ratings" json:"ratings"`
}

// ProductRef is a weak reference to a product listed by a user.
type ProductRef struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
}

type WishItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
}

// Cart is embedded in the user document and owned by it exclusively.
// TotalPrice is a running sum maintained by Apply, not recomputed from
// the lines on read.
type Cart struct {
	Items      []CartItem `bson:"items" json:"items"`
	TotalPrice float64    `bson:"totalPrice" json:"totalPrice"`
}

// CartItem snapshots the seller's display name at the time the line was
// added. The price is not snapshotted per line.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Seller    string             `bson:"seller" json:"seller"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// SellerRating is a rating left on a user in their seller role.
type SellerRating struct {
	Rating   float64            `bson:"rating" json:"rating"`
	UserID   primitive.ObjectID `bson:"userId" json:"userId"`
	Creation time.Time          `bson:"creation" json:"creation"`
	Comment  string             `bson:"comment" json:"comment"`
}

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	OriginalPrice float64            `bson:"originalPrice" json:"originalPrice"`
	OfferPrice    float64            `bson:"offerPrice" json:"offerPrice"`
	Description   string             `bson:"description" json:"description"`
	ImageURLs     []Image            `bson:"imageUrls" json:"imageUrls"`
	TotalRating   float64            `bson:"totalRating" json:"totalRating"`
	Ratings       []Rating           `bson:"ratings" json:"ratings"`
	RatingCount   int                `bson:"ratingCount" json:"ratingCount"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Category      string             `bson:"category" json:"category"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Image points at an object stored externally: Key is the object-store
// key, Path the public URL, Sorting the display order.
type Image struct {
	Path    string `bson:"path" json:"path"`
	Key     string `bson:"key" json:"key"`
	Sorting int    `bson:"sorting" json:"sorting"`
}

// Rating is one top-level thread entry on a product: the rating value,
// its comment, and the replies other users left under it.
type Rating struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Rating   float64            `bson:"rating" json:"rating"`
	Title    string             `bson:"title" json:"title"`
	Creation time.Time          `bson:"creation" json:"creation"`
	UserID   primitive.ObjectID `bson:"userId" json:"userId"`
	Comments CommentThread      `bson:"comments" json:"comments"`
}

type CommentThread struct {
	Message string  `bson:"message" json:"message"`
	Reply   []Reply `bson:"reply" json:"reply"`
}

type Reply struct {
	UserID  primitive.ObjectID `bson:"userId" json:"userId"`
	Message string             `bson:"message" json:"message"`
}

// Order is an immutable snapshot of one cart line at checkout time.
// Later changes to the product or the seller never reach it.
type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProductID    primitive.ObjectID `bson:"productId" json:"productId"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Price        float64            `bson:"price" json:"price"`
	Name         string             `bson:"name" json:"name"`
	DeliveryDate time.Time          `bson:"deliveryDate" json:"deliveryDate"`
	Seller       string             `bson:"seller" json:"seller"`
	ImageURL     string             `bson:"imageUrl" json:"imageUrl"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
