package main

import (
	"net/http"

	"github.com/bmizerany/pat"
)

func (app *application) routes() http.Handler {
	mux := pat.New()

	mux.Put("/signin", http.HandlerFunc(app.signIn))
	mux.Put("/login", http.HandlerFunc(app.login))
	mux.Get("/userData", app.requireAuth(app.userData))
	mux.Get("/email-search", http.HandlerFunc(app.emailCheck))

	mux.Get("/cart", app.requireAuth(app.showCart))
	mux.Post("/cart/:productId", app.requireAuth(app.updateCart))
	mux.Get("/get-wishlist", app.requireAuth(app.showWishList))
	mux.Get("/wishlist/:productId", app.requireAuth(app.addWishListItem))
	mux.Del("/wishlist/:wishItemId", app.requireAuth(app.deleteWishListItem))

	mux.Get("/products", http.HandlerFunc(app.listProducts))
	mux.Get("/products/:category", http.HandlerFunc(app.listCategory))
	mux.Get("/slideshow/:category", http.HandlerFunc(app.slideshow))
	mux.Get("/search", http.HandlerFunc(app.search))
	mux.Get("/admin/products", app.requireAuth(app.sellerProducts))
	mux.Post("/add-product", app.requireAuth(app.createProduct))
	mux.Del("/delete/:productId", http.HandlerFunc(app.deleteProduct))

	mux.Post("/product/comment/reply/:productId", app.requireAuth(app.addCommentReply))
	mux.Post("/product/comment/:productId", app.requireAuth(app.addComment))
	mux.Get("/product/:productId", http.HandlerFunc(app.showProduct))

	mux.Post("/order", app.requireAuth(app.placeOrder))
	mux.Get("/orders", app.requireAuth(app.listOrders))

	return app.logRequest(app.recoverPanic(mux))
}
