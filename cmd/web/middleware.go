package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const authContextKey = contextKey("auth")

type authClaims struct {
	UserID  primitive.ObjectID
	Email   string
	Expires time.Time
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.infoLog.Printf("%s - %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, fmt.Errorf("%v", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requireAuth parses the bearer token, checks the signing method and
// expiry, and puts the caller's identity into the request context.
func (app *application) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			app.clientError(w, http.StatusUnauthorized, "please attach the token")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			app.clientError(w, http.StatusUnauthorized, "please attach the token")
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return app.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			app.clientError(w, http.StatusUnauthorized, "can't verify token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			app.clientError(w, http.StatusUnauthorized, "can't verify token")
			return
		}
		idHex, _ := claims["userId"].(string)
		userID, err := primitive.ObjectIDFromHex(idHex)
		if err != nil {
			app.clientError(w, http.StatusUnauthorized, "can't verify token")
			return
		}

		auth := authClaims{UserID: userID}
		auth.Email, _ = claims["email"].(string)
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			auth.Expires = exp.Time
		}

		ctx := context.WithValue(r.Context(), authContextKey, auth)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
