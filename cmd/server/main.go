package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/nroux/clubhouse/internal/config"
	"github.com/nroux/clubhouse/internal/database"
	"github.com/nroux/clubhouse/internal/directory"
	postgresrepo "github.com/nroux/clubhouse/internal/repository/postgres"
	"github.com/nroux/clubhouse/internal/service"
	"github.com/nroux/clubhouse/internal/transport/http/handlers"
	"github.com/nroux/clubhouse/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// External directory
	dir := directory.NewClient(cfg.AuthURL, cfg.AuthServiceKey)

	// Repositories
	friendRepo := postgresrepo.NewFriendRequestRepo(pool)
	contentRepo := postgresrepo.NewContentRepo(pool)

	// Services
	friendService := service.NewFriendService(friendRepo, dir)
	notificationService := service.NewNotificationService(friendRepo, contentRepo, dir)

	// Handlers
	friendHandler := handlers.NewFriendHandler(friendService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	// Protected - Friends
	mux.Handle("GET /api/v1/friends", auth(http.HandlerFunc(friendHandler.List)))
	mux.Handle("GET /api/v1/friends/search", auth(http.HandlerFunc(friendHandler.Search)))
	mux.Handle("POST /api/v1/friends/requests", auth(http.HandlerFunc(friendHandler.SendRequest)))
	mux.Handle("POST /api/v1/friends/requests/{id}/respond", auth(http.HandlerFunc(friendHandler.Respond)))

	// Protected - Notifications
	mux.Handle("GET /api/v1/notifications", auth(http.HandlerFunc(notificationHandler.List)))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}
