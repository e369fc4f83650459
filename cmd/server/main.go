package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/reelspro/backend/internal/router"
	"github.com/reelspro/backend/pkg/config"
	"github.com/reelspro/backend/pkg/firebase"
	"github.com/reelspro/backend/validators"
)

func main() {
	// Initialize database connections (also loads .env)
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	cfg := config.Load()

	// Firebase is only needed for social login; run without it if unset.
	var firebaseApp *firebase.App
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err = firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, social login disabled.")
	}

	e := echo.New()
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)

	if firebaseApp != nil {
		router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, firebaseApp.AuthClient)
	} else {
		router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, nil)
	}

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
