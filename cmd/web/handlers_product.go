package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/saifibne/ecommerce-api/internal/models"
)

func (app *application) listProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	products, err := app.DB.GetProducts(r.Context(), page)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"productsData": products})
}

func (app *application) showProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":productId"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	detail, err := app.DB.GetProductDetail(r.Context(), productID)
	if err != nil {
		app.domainError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{
		"message":     "successfully found product",
		"productData": detail,
	})
}

func (app *application) listCategory(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get(":category")
	sortBy := r.URL.Query().Get("sortBy")

	products, err := app.DB.GetProductsByCategory(r.Context(), category, sortBy)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"productsData": products})
}

func (app *application) slideshow(w http.ResponseWriter, r *http.Request) {
	products, err := app.DB.GetSlideshow(r.Context(), r.URL.Query().Get(":category"))
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"productsData": products})
}

func (app *application) search(w http.ResponseWriter, r *http.Request) {
	products, err := app.DB.SearchProducts(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"productsData": products})
}

func (app *application) sellerProducts(w http.ResponseWriter, r *http.Request) {
	products, err := app.DB.GetProductsBySeller(r.Context(), app.auth(r).UserID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"message": "success", "products": products})
}

type addProductRequest struct {
	Name        string  `validate:"required,min=6"`
	Price       float64 `validate:"required,gt=0"`
	Description string  `validate:"required,min=6"`
	Category    string  `validate:"required"`
}

const maxProductImages = 6

func (app *application) createProduct(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(32 << 20)
	if err != nil {
		app.clientError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	req := addProductRequest{
		Name:        r.FormValue("name"),
		Price:       price,
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}
	if err := app.validate.Struct(req); err != nil {
		app.clientError(w, http.StatusBadRequest, "some validation error occurred")
		return
	}

	files := r.MultipartForm.File["imageUrl"]
	if len(files) == 0 {
		app.clientError(w, http.StatusBadRequest, "provide some images")
		return
	}
	if len(files) > maxProductImages {
		files = files[:maxProductImages]
	}

	images := []models.Image{}
	for i, header := range files {
		contentType := header.Header.Get("Content-Type")
		switch contentType {
		case "image/jpg", "image/jpeg", "image/png", "image/webp":
		default:
			continue
		}

		file, err := header.Open()
		if err != nil {
			app.serverError(w, err)
			return
		}
		path, key, err := app.store.Upload(r.Context(), header.Filename, contentType, file)
		file.Close()
		if err != nil {
			app.serverError(w, err)
			return
		}
		images = append(images, models.Image{Path: path, Key: key, Sorting: i})
	}

	product := &models.Product{
		Name:          req.Name,
		OriginalPrice: req.Price,
		OfferPrice:    req.Price,
		Description:   req.Description,
		ImageURLs:     images,
		TotalRating:   0,
		Ratings:       []models.Rating{},
		RatingCount:   0,
		UserID:        app.auth(r).UserID,
		Category:      req.Category,
	}
	err = app.DB.InsertProduct(r.Context(), product)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"message": "success"})
}

// deleteProduct removes the listing, then deletes its stored images.
// Image cleanup is best effort: failures are logged and the response
// stays a success, the document itself is already gone.
func (app *application) deleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":productId"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := app.DB.DeleteProduct(r.Context(), productID)
	if err != nil {
		app.domainError(w, err)
		return
	}
	for _, image := range product.ImageURLs {
		if err := app.store.Delete(r.Context(), image.Key); err != nil {
			app.errorLog.Println("failed to delete image object:", err)
		}
	}
	app.writeJSON(w, http.StatusOK, envelope{"message": "product successfully deleted"})
}

type addCommentRequest struct {
	Title   string  `json:"title" validate:"required,min=1"`
	Comment string  `json:"comment" validate:"required,min=1"`
	Rating  float64 `json:"rating" validate:"gte=0,lte=5"`
}

func (app *application) addComment(w http.ResponseWriter, r *http.Request) {
	productID, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":productId"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req addCommentRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	product, err := app.DB.GetProduct(r.Context(), productID)
	if err != nil {
		app.domainError(w, err)
		return
	}
	err = product.AddRating(app.auth(r).UserID, req.Title, req.Comment, req.Rating, time.Now())
	if err != nil {
		app.domainError(w, err)
		return
	}

	err = app.DB.SaveRatings(r.Context(), product)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"message": "comment added successfully"})
}

type addReplyRequest struct {
	Comment string `json:"comment" validate:"required,min=1"`
}

func (app *application) addCommentReply(w http.ResponseWriter, r *http.Request) {
	productID, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":productId"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	commentID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("commentId"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	var req addReplyRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	product, err := app.DB.GetProduct(r.Context(), productID)
	if err != nil {
		app.domainError(w, err)
		return
	}
	err = product.AddReply(commentID, app.auth(r).UserID, req.Comment)
	if err != nil {
		app.domainError(w, err)
		return
	}

	err = app.DB.SaveRatings(r.Context(), product)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"message": "reply added successfully"})
}

type orderLineRequest struct {
	ProductID    primitive.ObjectID `json:"productId" validate:"required"`
	Price        float64            `json:"price" validate:"required,gt=0"`
	Name         string             `json:"name" validate:"required"`
	DeliveryDate time.Time          `json:"deliveryDate" validate:"required"`
	Seller       string             `json:"seller" validate:"required"`
	ImageURL     string             `json:"imageUrl" validate:"required"`
	Quantity     int                `json:"quantity" validate:"required,gt=0"`
}

// placeOrder writes one immutable snapshot per submitted cart line,
// then clears the buyer's cart. The cart is only cleared once every
// snapshot has been persisted; a failed insert leaves it untouched.
// An empty array is accepted: nothing is inserted and the cart is
// still cleared.
func (app *application) placeOrder(w http.ResponseWriter, r *http.Request) {
	var lines []orderLineRequest
	err := json.NewDecoder(r.Body).Decode(&lines)
	if err != nil {
		app.clientError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for _, line := range lines {
		if err := app.validate.Struct(line); err != nil {
			app.clientError(w, http.StatusBadRequest, "some validation error occurred")
			return
		}
	}

	buyerID := app.auth(r).UserID
	orders := make([]models.Order, 0, len(lines))
	for _, line := range lines {
		orders = append(orders, models.Order{
			ProductID:    line.ProductID,
			Price:        line.Price,
			Name:         line.Name,
			DeliveryDate: line.DeliveryDate,
			Seller:       line.Seller,
			ImageURL:     line.ImageURL,
			Quantity:     line.Quantity,
		})
	}

	err = app.checkout.InsertOrders(r.Context(), buyerID, orders)
	if err != nil {
		app.serverError(w, err)
		return
	}
	err = app.checkout.ClearCart(r.Context(), buyerID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"message": "successfully placed order"})
}

func (app *application) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := app.DB.GetOrdersByUser(r.Context(), app.auth(r).UserID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"message": "success", "orders": orders})
}
