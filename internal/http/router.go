package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookfinder/internal/auth"
)

// RouterConfig carries all router dependencies, improving testability and
// reducing parameter count.
type RouterConfig struct {
	AuthService    AuthService
	AuthMiddleware *auth.Middleware
	BooksStore     BooksStore
	BookFinder     BookFinder
	Favourites     FavouritesStore
	SearchClient   SearchClient
	Importer       BookImporter
	Database       Pinger
	Version        string
	Debug          bool
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Health)

	authController := NewAuthController(cfg.AuthService)
	booksController := NewBooksController(cfg.BooksStore, cfg.SearchClient, cfg.Importer, cfg.Debug)
	favouritesController := NewFavouritesController(cfg.Favourites, cfg.BookFinder)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/register", authController.Register)
		v1.POST("/login", authController.Login)

		authed := v1.Group("")
		authed.Use(cfg.AuthMiddleware.Handler())
		{
			authed.POST("/logout", authController.Logout)

			books := authed.Group("/books")
			{
				books.GET("", booksController.ListBooks)

				admin := books.Group("")
				admin.Use(cfg.AuthMiddleware.RequireAdmin())
				{
					admin.GET("/search", booksController.SearchBooks)
					admin.POST("/import", booksController.ImportBook)
				}
			}

			favorites := authed.Group("/favorites")
			{
				favorites.GET("", favouritesController.ListFavourites)
				favorites.POST("/store/:book", favouritesController.AddFavourite)
				favorites.DELETE("/destroy/:book", favouritesController.RemoveFavourite)
			}
		}
	}

	return router
}
