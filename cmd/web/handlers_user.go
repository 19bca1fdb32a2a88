package main

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type signInRequest struct {
	Name        string `json:"name" validate:"required,min=4"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	CompanyName string `json:"companyName" validate:"required,min=4"`
}

func (app *application) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	err := app.DB.InsertUser(r.Context(), req.Name, req.Email, req.Password, req.CompanyName)
	if err != nil {
		app.domainError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"message": "success"})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (app *application) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	user, err := app.DB.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		app.domainError(w, err)
		return
	}

	expireTime := time.Now().Add(time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.ID.Hex(),
		"email":  user.Email,
		"exp":    expireTime.Unix(),
	})
	signed, err := token.SignedString(app.jwtSecret)
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.writeJSON(w, http.StatusOK, envelope{
		"message":    "successfully login",
		"token":      signed,
		"expireTime": expireTime,
		"userData": envelope{
			"name":        user.Name,
			"email":       user.Email,
			"companyName": user.CompanyName,
			"products":    user.Products,
			"totalRating": user.TotalRating,
			"rating":      user.Ratings,
		},
	})
}

func (app *application) userData(w http.ResponseWriter, r *http.Request) {
	auth := app.auth(r)

	user, err := app.DB.GetUser(r.Context(), auth.UserID)
	if err != nil {
		app.domainError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{
		"message":    "success",
		"userData":   user,
		"expireTime": auth.Expires,
	})
}

func (app *application) emailCheck(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	exists, err := app.DB.EmailExists(r.Context(), email)
	if err != nil {
		app.serverError(w, err)
		return
	}
	found := "failed"
	if exists {
		found = "success"
	}
	app.writeJSON(w, http.StatusOK, envelope{"emailFound": found})
}

func (app *application) showCart(w http.ResponseWriter, r *http.Request) {
	cart, err := app.DB.GetCart(r.Context(), app.auth(r).UserID)
	if err != nil {
		app.domainError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"message": "success", "cart": cart})
}

type cartRequest struct {
	Code string `json:"code" validate:"required,oneof=add remove delete"`
}

func (app *application) updateCart(w http.ResponseWriter, r *http.Request) {
	productID, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":productId"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req cartRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	user, err := app.DB.GetUser(r.Context(), app.auth(r).UserID)
	if err != nil {
		app.domainError(w, err)
		return
	}
	product, err := app.DB.GetProduct(r.Context(), productID)
	if err != nil {
		app.domainError(w, err)
		return
	}
	seller, err := app.DB.GetUser(r.Context(), product.UserID)
	if err != nil {
		app.domainError(w, err)
		return
	}

	user.Cart.Apply(req.Code, product.ID, product.OfferPrice, seller.CompanyName)

	err = app.DB.UpdateCart(r.Context(), user.ID, user.Cart)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"message": "cart updated"})
}

func (app *application) addWishListItem(w http.ResponseWriter, r *http.Request) {
	productID, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":productId"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	user, err := app.DB.GetUser(r.Context(), app.auth(r).UserID)
	if err != nil {
		app.domainError(w, err)
		return
	}
	err = user.AddToWishList(productID)
	if err != nil {
		app.domainError(w, err)
		return
	}

	err = app.DB.UpdateWishList(r.Context(), user.ID, user.WishList)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"message": "item added to wishlist successfully"})
}

func (app *application) showWishList(w http.ResponseWriter, r *http.Request) {
	wishList, err := app.DB.GetWishList(r.Context(), app.auth(r).UserID)
	if err != nil {
		app.domainError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"message": "success", "wishList": wishList})
}

func (app *application) deleteWishListItem(w http.ResponseWriter, r *http.Request) {
	productID, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":wishItemId"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	err = app.DB.PullWishListItem(r.Context(), app.auth(r).UserID, productID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"message": "success"})
}
