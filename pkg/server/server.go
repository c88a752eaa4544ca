package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fermenta.to/Fermenta/configs"
	"fermenta.to/Fermenta/pkg/auth"
	"fermenta.to/Fermenta/pkg/repository"
)

// NewRouter wires every handler into a gin engine under /api. The caller
// owns the outer HTTP server (CORS, h2c, timeouts).
func NewRouter(conf *configs.Config, repo *repository.Repository, logger *zap.Logger) *gin.Engine {
	if conf.Server.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	sessions := auth.NewManager(conf, repo, logger)
	google := auth.NewGoogleAuthenticator(conf, repo, logger)

	authHandler := NewAuthHandler(repo, sessions, google, logger)
	pubHandler := NewPubHandler(repo, logger)
	contentHandler := NewPubContentHandler(repo, logger)
	breweryHandler := NewBreweryHandler(repo, logger)
	beerHandler := NewBeerHandler(repo, logger, conf)
	favoriteHandler := NewFavoriteHandler(repo, logger)
	tastingHandler := NewTastingHandler(repo, logger)
	communityHandler := NewCommunityHandler(repo, logger)
	adminHandler := NewAdminHandler(repo, logger)

	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())

	api := router.Group("/api")

	api.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/google", authHandler.GoogleRedirect)
	api.GET("/auth/google/callback", authHandler.GoogleCallback)

	api.GET("/pubs", pubHandler.List)
	api.GET("/pubs/:id", pubHandler.Get)
	api.GET("/pubs/:id/reviews", pubHandler.Reviews)
	api.GET("/pubs/:id/taplist", contentHandler.GetTapList)
	api.GET("/pubs/:id/bottles", contentHandler.GetBottleList)
	api.GET("/pubs/:id/menu", contentHandler.GetMenu)

	api.GET("/breweries", breweryHandler.List)
	api.GET("/breweries/all", breweryHandler.ListAll)
	api.GET("/breweries/:id", breweryHandler.Get)
	api.GET("/beers", beerHandler.List)
	api.GET("/beers/:id", beerHandler.Get)

	adminGate := []gin.HandlerFunc{sessions.Authenticated(), sessions.RequireAdmin()}

	api.DELETE("/pubs/:id", append(adminGate, pubHandler.Delete)...)
	api.POST("/breweries", append(adminGate, breweryHandler.Create)...)
	api.PATCH("/breweries/:id", append(adminGate, breweryHandler.Update)...)
	api.POST("/beers", append(adminGate, beerHandler.Create)...)
	api.PATCH("/beers/:id", append(adminGate, beerHandler.Update)...)
	api.GET("/catalog/beers", append(adminGate, beerHandler.Lookup)...)

	authed := api.Group("", sessions.Authenticated())
	{
		authed.GET("/auth/me", authHandler.CurrentUser)
		authed.POST("/auth/active-role", authHandler.SetActiveRole)

		authed.GET("/favorites", favoriteHandler.List)
		authed.POST("/favorites", favoriteHandler.Add)
		authed.DELETE("/favorites/:itemType/:itemId", favoriteHandler.Remove)

		authed.GET("/tastings", tastingHandler.List)
		authed.POST("/tastings", tastingHandler.Create)
		authed.PATCH("/tastings/:id", tastingHandler.Update)
		authed.DELETE("/tastings/:id", tastingHandler.Delete)

		authed.POST("/reviews", communityHandler.SubmitReview)
		authed.POST("/reports", communityHandler.SubmitReport)
		authed.POST("/publican-requests", communityHandler.SubmitPublicanRequest)

		authed.POST("/pubs", pubHandler.Create)
	}

	owner := api.Group("", sessions.Authenticated(), sessions.RequirePubOwner())
	{
		owner.GET("/my-pubs", pubHandler.MyPubs)
		owner.PATCH("/pubs/:id", pubHandler.Update)

		owner.POST("/pubs/:id/taplist", contentHandler.AddTapEntry)
		owner.PATCH("/pubs/:id/taplist/:entryId", contentHandler.UpdateTapEntry)
		owner.DELETE("/pubs/:id/taplist/:entryId", contentHandler.DeleteTapEntry)

		owner.POST("/pubs/:id/bottles", contentHandler.AddBottleEntry)
		owner.PATCH("/pubs/:id/bottles/:entryId", contentHandler.UpdateBottleEntry)
		owner.DELETE("/pubs/:id/bottles/:entryId", contentHandler.DeleteBottleEntry)

		owner.POST("/pubs/:id/menu", contentHandler.AddMenuCategory)
		owner.DELETE("/pubs/:id/menu/:categoryId", contentHandler.DeleteMenuCategory)
		owner.POST("/pubs/:id/menu/:categoryId/items", contentHandler.AddMenuItem)
		owner.PATCH("/pubs/:id/menu/items/:itemId", contentHandler.UpdateMenuItem)
		owner.DELETE("/pubs/:id/menu/items/:itemId", contentHandler.DeleteMenuItem)
	}

	admin := api.Group("/admin", sessions.Authenticated(), sessions.RequireAdmin())
	{
		admin.GET("/reviews", adminHandler.ListReviews)
		admin.POST("/reviews/:id/approve", adminHandler.ApproveReview)
		admin.POST("/reviews/:id/reject", adminHandler.RejectReview)

		admin.GET("/reports", adminHandler.ListReports)
		admin.POST("/reports/:id/resolve", adminHandler.ResolveReport)
		admin.POST("/reports/:id/dismiss", adminHandler.DismissReport)

		admin.GET("/publican-requests", adminHandler.PendingPublicanRequests)
		admin.POST("/publican-requests/:id/approve", adminHandler.ApprovePublicanRequest)
		admin.POST("/publican-requests/:id/reject", adminHandler.RejectPublicanRequest)

		admin.GET("/users", adminHandler.ListUsers)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
		admin.GET("/stats", adminHandler.Stats)
	}

	return router
}

// requestLogger logs each request through zap instead of gin's default writer.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()))
	}
}
