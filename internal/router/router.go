// internal/router/router.go
package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/javajoker/bookreview/internal/config"
	"github.com/javajoker/bookreview/internal/handlers"
	"github.com/javajoker/bookreview/internal/middleware"
	"github.com/javajoker/bookreview/internal/services"
	"github.com/javajoker/bookreview/internal/store"
)

const Version = "1.0.0"

// Router is the HTTP engine plus the resources it owns.
type Router struct {
	*gin.Engine
	limiter *middleware.RateLimiter
}

// Close stops background work started by Initialize.
func (r *Router) Close() {
	r.limiter.Stop()
}

func Initialize(db *gorm.DB, cfg *config.Config) *Router {
	// Initialize services
	st := store.New(db)
	bookService := services.NewBookService(st)
	reviewService := services.NewReviewService(st, bookService)
	dashboardService := services.NewDashboardService(bookService, reviewService)

	// Initialize handlers
	homeHandler := handlers.NewHomeHandler(dashboardService, db, Version)
	bookHandler := handlers.NewBookHandler(bookService, reviewService)
	reviewHandler := handlers.NewReviewHandler(reviewService, bookService)

	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())

	// Health check
	r.GET("/health", homeHandler.Health)

	// API v1 routes
	v1 := r.Group("/v1")
	v1.Use(limiter.Middleware())
	{
		v1.GET("/dashboard", homeHandler.Dashboard)

		books := v1.Group("/books")
		{
			books.GET("", bookHandler.GetBooks)
			books.POST("", bookHandler.CreateBook)
			books.GET("/genre/:genre", bookHandler.GetBooksByGenre)
			books.GET("/author/:author", bookHandler.GetBooksByAuthor)
			books.GET("/year/:year", bookHandler.GetBooksByYear)
			books.GET("/years", bookHandler.GetBooksByYearRange)
			books.GET("/:id", bookHandler.GetBook)
			books.PUT("/:id", bookHandler.UpdateBook)
			books.DELETE("/:id", bookHandler.DeleteBook)
			books.GET("/:id/reviews", bookHandler.GetBookReviews)
		}

		reviews := v1.Group("/reviews")
		{
			reviews.GET("", reviewHandler.GetReviews)
			reviews.POST("", reviewHandler.CreateReview)
			reviews.GET("/:id", reviewHandler.GetReview)
			reviews.PUT("/:id", reviewHandler.UpdateReview)
			reviews.DELETE("/:id", reviewHandler.DeleteReview)
		}
	}

	return &Router{Engine: r, limiter: limiter}
}
