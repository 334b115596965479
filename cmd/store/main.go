package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ndmitriev/online-store/internal/cache"
	"github.com/ndmitriev/online-store/internal/config"
	"github.com/ndmitriev/online-store/internal/events"
	"github.com/ndmitriev/online-store/internal/httpserver"
	"github.com/ndmitriev/online-store/internal/logging"
	"github.com/ndmitriev/online-store/internal/models"
	"github.com/ndmitriev/online-store/internal/search"
	"github.com/ndmitriev/online-store/internal/service"
	"github.com/ndmitriev/online-store/internal/store"
	"github.com/ndmitriev/online-store/internal/uow"
	"github.com/ndmitriev/online-store/pkg/db"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.JWTRefreshSecret, "JWT_REFRESH_SECRET")

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := db.Migrate(gdb,
		&models.Role{},
		&models.User{},
		&models.Customer{},
		&models.Cart{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
	); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	c := cache.New(cache.Config{
		Capacity: cfg.CacheCapacity,
		TTL:      cfg.CacheTTL,
	})
	u := uow.New(gdb)

	users := store.NewUserStore(u, c)
	customers := store.NewCustomerStore(u, c)
	carts := store.NewCartStore(u, c)
	categories := store.NewCategoryStore(u, c)
	products := store.NewProductStore(u, c)

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers)
		defer kp.Close()
		publisher = kp
	}

	var indexer search.Indexer = search.NopIndexer{}
	var searcher httpserver.ProductSearcher
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		indexer = esClient
		searcher = esClient
	}

	authService := &service.AuthService{
		Users:         users,
		Publisher:     publisher,
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
	}
	cartService := &service.CartService{
		Carts:     carts,
		Customers: customers,
		Products:  products,
		Publisher: publisher,
	}
	categoryService := &service.CategoryService{Categories: categories}
	productService := &service.ProductService{
		Products:   products,
		Categories: categories,
		Publisher:  publisher,
		Indexer:    indexer,
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(httpserver.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Auth:       &httpserver.AuthHTTP{Svc: authService},
		Cart:       &httpserver.CartHTTP{Svc: cartService, Customers: customers},
		Categories: &httpserver.CategoryHTTP{Svc: categoryService},
		Products:   &httpserver.ProductHTTP{Svc: productService},
		Search:     &httpserver.SearchHTTP{Searcher: searcher},
		JWTSecret:  cfg.JWTAccessSecret,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		logger.Info("starting server", "service", cfg.ServiceName, "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("server stopped")
}
