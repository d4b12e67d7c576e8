// Command taskdeck runs the task-management API server.
// It initializes configuration, the database pool, services and handlers,
// sets up the HTTP router and middleware, and starts the server with
// graceful shutdown. Non-API paths fall back to serving the single-page
// bundle so the client can own its own routing.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/user/taskdeck-go/apperror"
	"github.com/user/taskdeck-go/auth"
	"github.com/user/taskdeck-go/config"
	"github.com/user/taskdeck-go/db"
	"github.com/user/taskdeck-go/tasks"
	"github.com/user/taskdeck-go/users"
)

func main() {
	// In development the .env file sets the environment; in production the
	// variables are set directly and the file is absent.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	apperror.SetDebug(cfg.Server.Debug)

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.EnableExtensions(pool); err != nil {
		log.Fatalf("Failed to enable extensions: %v", err)
	}

	if cfg.Server.RunMigrations {
		if err := db.RunMigrations(cfg.DB, cfg.Server.MigrationsPath); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Manual dependency wiring: stores feed services, services feed handlers.
	userStore := users.NewPGStore(pool)
	authService := auth.NewService(userStore, *cfg.Auth)
	authHandlers := auth.NewHandlers(authService, *cfg.Auth)

	taskStore := tasks.NewPGStore(pool)
	taskService := tasks.NewService(taskStore)
	taskHandler := tasks.NewHandler(taskService)

	r := chi.NewRouter()

	// Global middleware; chi requires these before any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Auth routes: signup/login/logout are public, check requires a session.
	r.Route("/user", func(r chi.Router) {
		r.Post("/signup", authHandlers.HandleSignup())
		r.Post("/login", authHandlers.HandleLogin())
		r.Post("/logout", authHandlers.HandleLogout())
		r.With(auth.RequireAuth(authService)).Get("/check", authHandlers.HandleCheck())
	})

	// Task routes, all behind the auth middleware.
	r.Route("/tasks", func(r chi.Router) {
		r.Use(auth.RequireAuth(authService))
		taskHandler.RegisterRoutes(r)
	})

	// Anything else is the single-page bundle.
	r.NotFound(spaHandler(cfg.Server.StaticDir))

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// spaHandler serves files from the static bundle directory and falls back to
// index.html for paths that match no file, which lets the client-side router
// own deep links.
func spaHandler(staticDir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(staticDir))
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(staticDir, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	}
}
