package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/gereacosta1/OnePointMotors/internal/cart"
	"github.com/gereacosta1/OnePointMotors/internal/catalog"
	"github.com/gereacosta1/OnePointMotors/internal/checkout"
	"github.com/gereacosta1/OnePointMotors/internal/contact"
	h "github.com/gereacosta1/OnePointMotors/internal/http"
	"github.com/gereacosta1/OnePointMotors/internal/payment"
)

type Config struct {
	HTTPPort        string
	BaseURL         string
	MerchantName    string
	RedisAddr       string
	RedisPassword   string
	SQLitePath      string
	MigrationsPath  string
	AffirmEnv       string
	AffirmAPIURL    string
	AffirmPublicKey string
	AffirmPrivate   string
	SendGridAPIKey  string
	ContactFrom     string
	ContactTo       string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:8080"),
		MerchantName:    getEnv("MERCHANT_NAME", "EcoRide"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		SQLitePath:      getEnv("SQLITE_PATH", "storefront.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "internal/catalog/migrations"),
		AffirmEnv:       getEnv("AFFIRM_ENV", "sandbox"),
		AffirmAPIURL:    getEnv("AFFIRM_API_URL", "https://sandbox.affirm.com/api/v2"),
		AffirmPublicKey: getEnv("AFFIRM_PUBLIC_KEY", ""),
		AffirmPrivate:   getEnv("AFFIRM_PRIVATE_KEY", ""),
		SendGridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
		ContactFrom:     getEnv("CONTACT_FROM_EMAIL", "no-reply@onepointmotors.com"),
		ContactTo:       getEnv("CONTACT_TO_EMAIL", "sales@onepointmotors.com"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := loadConfig()
	ctx := context.Background()

	// Catalog
	repo, err := catalog.NewRepository(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer repo.Close()
	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Catalog database ready at %s", cfg.SQLitePath)

	// Cart store: Redis when configured, in-memory otherwise.
	var store cart.Store
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Redis connection failed:", err)
		}
		log.Printf("Redis ping succeeded")
		store = cart.NewRedisStore(redisClient)
	} else {
		log.Printf("REDIS_ADDR not set, carts are in-memory only")
		store = cart.NewMemoryStore()
	}
	carts := cart.NewService(store)

	// Checkout
	payments := payment.NewClient(payment.Config{
		Environment: cfg.AffirmEnv,
		APIBaseURL:  cfg.AffirmAPIURL,
		PublicKey:   cfg.AffirmPublicKey,
		PrivateKey:  cfg.AffirmPrivate,
	})
	assembler := checkout.NewAssembler(checkout.Config{
		BaseURL:      cfg.BaseURL,
		MerchantName: cfg.MerchantName,
	})
	checkouts := checkout.NewService(carts, assembler, payments)

	// Contact form
	var mailer contact.Mailer
	if cfg.SendGridAPIKey != "" {
		mailer = contact.NewSendGridMailer(cfg.SendGridAPIKey, cfg.ContactFrom, cfg.ContactTo)
	} else {
		log.Printf("SENDGRID_API_KEY not set, contact messages are logged only")
		mailer = contact.LogMailer{}
	}

	cartHandler := h.NewCartHandler(carts, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(checkouts, cfg.RequestTimeout)
	productHandler := h.NewProductHandler(repo, cfg.RequestTimeout)
	contactHandler := h.NewContactHandler(mailer, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{item_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{item_id}", cartHandler.RemoveItem)
			r.Post("/toggle", cartHandler.ToggleCart)
		})
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.InitiateCheckout)
			r.Post("/confirm", checkoutHandler.ConfirmCheckout)
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{slug}", productHandler.GetProduct)
		})
		r.Post("/contact", contactHandler.SendMessage)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront API starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
