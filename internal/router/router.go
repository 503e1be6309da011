package router

import (
	"time"

	"carefinder/config"
	"carefinder/internal/handler"
	"carefinder/internal/middleware"
	"carefinder/internal/repository"
	"carefinder/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(cfg.Directory.RateLimitPerMin, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	locRepo := repository.NewLocationRepository(db)
	favRepo := repository.NewFavoriteRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo, profileRepo)
	reviewSvc := service.NewReviewService(reviewRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	orgHandler := handler.NewOrganizationHandler(orgRepo)
	locHandler := handler.NewLocationHandler(cfg, locRepo, reviewRepo, favRepo, profileRepo)
	reviewHandler := handler.NewReviewHandler(reviewSvc, reviewRepo, voteRepo, locRepo, profileRepo)
	favHandler := handler.NewFavoriteHandler(favRepo, locRepo, profileRepo)
	meHandler := handler.NewMeHandler(userRepo, profileRepo, reviewRepo)
	adminHandler := handler.NewAdminHandler(reviewRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	optionalMw := middleware.AuthOptional(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMw, authHandler.Logout)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
			authGroup.POST("/google/token", googleOAuthHandler.Token)
		}

		// Public directory, personalized when a token is attached
		api.GET("/organizations", orgHandler.List)
		api.GET("/organizations/:id", orgHandler.Get)
		api.GET("/locations", locHandler.List)
		api.GET("/locations/nearby", locHandler.Nearby)
		api.GET("/locations/:id", optionalMw, locHandler.Get)
		api.GET("/locations/:id/reviews", optionalMw, reviewHandler.ListForLocation)
		api.GET("/counties", locHandler.Counties)

		// Caregiver actions
		api.POST("/locations/:id/reviews", authMw, reviewHandler.Submit)
		api.DELETE("/reviews/:id", authMw, reviewHandler.Delete)
		api.POST("/reviews/:id/helpful", authMw, reviewHandler.Vote)
		api.DELETE("/reviews/:id/helpful", authMw, reviewHandler.Unvote)
		api.POST("/favorites/:location_id", authMw, favHandler.Add)
		api.DELETE("/favorites/:location_id", authMw, favHandler.Remove)
		api.PATCH("/favorites/:location_id", authMw, favHandler.UpdateVisitState)

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", meHandler.GetProfile)
			me.PATCH("/profile", meHandler.UpdateProfile)
			me.GET("/favorites", favHandler.List)
			me.GET("/reviews", meHandler.MyReviews)
			me.DELETE("", meHandler.DeleteAccount)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.POST("/organizations", orgHandler.Create)
			admin.PUT("/organizations/:id", orgHandler.Update)
			admin.DELETE("/organizations/:id", orgHandler.Delete)
			admin.POST("/locations", locHandler.Create)
			admin.PUT("/locations/:id", locHandler.Update)
			admin.DELETE("/locations/:id", locHandler.Delete)
			admin.GET("/reviews/flagged", adminHandler.ListFlagged)
			admin.PATCH("/reviews/:id/status", adminHandler.UpdateStatus)
		}
	}

	return r
}
