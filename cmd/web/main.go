package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/saifibne/ecommerce-api/internal/models"
	"github.com/saifibne/ecommerce-api/internal/storage"
)

type application struct {
	errorLog  *log.Logger
	infoLog   *log.Logger
	jwtSecret []byte
	DB        *models.MongoDB
	checkout  checkoutStore
	store     imageStore
	validate  *validator.Validate
}

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
	addr := flag.String("addr", ":4000", "HTTP network address")
	flag.Parse()

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	dsn := os.Getenv("MONGO_URL")
	if dsn == "" {
		errorLog.Fatal("MONGO_URL environment variable not found")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		errorLog.Fatal("JWT_SECRET environment variable not found")
	}
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		errorLog.Fatal("S3_BUCKET environment variable not found")
	}

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(dsn))
	if err != nil {
		errorLog.Fatal(err)
	}
	err = client.Ping(context.TODO(), nil)
	if err != nil {
		errorLog.Fatal(err)
	}
	infoLog.Println("Connected to database!")

	store, err := storage.NewObjectStore(context.TODO(), bucket)
	if err != nil {
		errorLog.Fatal(err)
	}

	db := client.Database("ecommerce")
	mongoDB := &models.MongoDB{
		Users:    db.Collection("users"),
		Products: db.Collection("products"),
		Orders:   db.Collection("orders"),
	}
	app := &application{
		errorLog:  errorLog,
		infoLog:   infoLog,
		jwtSecret: []byte(secret),
		DB:        mongoDB,
		checkout:  mongoDB,
		store:     store,
		validate:  validator.New(),
	}

	err = app.DB.EnsureIndexes(context.TODO())
	if err != nil {
		errorLog.Fatal(err)
	}

	srv := &http.Server{
		Addr:     *addr,
		ErrorLog: errorLog,
		Handler:  app.routes(),
	}

	infoLog.Printf("Starting server on %s", *addr)
	err = srv.ListenAndServe()
	errorLog.Fatal(err)
}
