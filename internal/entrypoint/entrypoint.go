package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookfinder/internal/auth"
	"github.com/mrlokans/bookfinder/internal/cache"
	"github.com/mrlokans/bookfinder/internal/config"
	"github.com/mrlokans/bookfinder/internal/database"
	"github.com/mrlokans/bookfinder/internal/database/books"
	"github.com/mrlokans/bookfinder/internal/database/favourites"
	"github.com/mrlokans/bookfinder/internal/database/users"
	"github.com/mrlokans/bookfinder/internal/googlebooks"
	http_controllers "github.com/mrlokans/bookfinder/internal/http"
	"github.com/mrlokans/bookfinder/internal/importer"
	"github.com/mrlokans/bookfinder/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down within
// the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background jobs before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires all dependencies and starts the server.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookfinder v%s", version)

	if cfg.GoogleBooks.APIKey == "" {
		log.Printf("WARNING: Google Books API key is not set. Requests will be subject to anonymous quota. Set 'GOOGLE_BOOKS_KEY' to raise it.")
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	cacheStore := cache.NewStore()
	googleClient := googlebooks.NewClient(cfg.GoogleBooks, cacheStore, cfg.Cache.TTL)

	booksRepo := books.NewRepository(db.DB)
	favouritesRepo := favourites.NewRepository(db.DB)
	usersRepo := users.NewRepository(db.DB)

	authService := auth.NewService(usersRepo, cfg.Auth)
	authMiddleware := auth.NewMiddleware(authService)
	bookImporter := importer.New(booksRepo, googleClient)

	pruner := scheduler.NewCachePruneScheduler(cacheStore)
	if err := pruner.Start(cfg.Cache.PruneSchedule); err != nil {
		log.Fatalf("Failed to start cache prune scheduler: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		AuthService:    authService,
		AuthMiddleware: authMiddleware,
		BooksStore:     booksRepo,
		BookFinder:     booksRepo,
		Favourites:     favouritesRepo,
		SearchClient:   googleClient,
		Importer:       bookImporter,
		Database:       db,
		Version:        version,
		Debug:          cfg.Global.Debug,
	})

	Serve(router, cfg, func(ctx context.Context) {
		pruner.Stop()
	})
}
