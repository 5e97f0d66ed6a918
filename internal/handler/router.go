package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"eventcrm/internal/domain/user"
	"eventcrm/internal/handler/api"
	"eventcrm/internal/handler/middleware"
	"eventcrm/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	catalogHandler *api.CatalogHandler,
	draftHandler *api.DraftHandler,
	offerHandler *api.OfferHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, catalogHandler, draftHandler, offerHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	catalogHandler *api.CatalogHandler,
	draftHandler *api.DraftHandler,
	offerHandler *api.OfferHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		products := apiGroup.Group("/products")
		products.Use(authMiddleware.RequireAuth())
		{
			addRoutes(products, []route{
				{Method: http.MethodGet, Path: "", Handler: catalogHandler.ListProducts},
				{Method: http.MethodGet, Path: "/:id", Handler: catalogHandler.GetProduct},
			})
		}

		drafts := apiGroup.Group("/drafts")
		drafts.Use(authMiddleware.RequireAuth())
		{
			addRoutes(drafts, []route{
				{Method: http.MethodPost, Path: "", Handler: draftHandler.CreateDraft},
				{Method: http.MethodGet, Path: "/:id", Handler: draftHandler.GetDraft},
				{Method: http.MethodDelete, Path: "/:id", Handler: draftHandler.DiscardDraft},
				{Method: http.MethodPost, Path: "/:id/items", Handler: draftHandler.AddProduct},
				{Method: http.MethodPatch, Path: "/:id/items/:itemId", Handler: draftHandler.UpdateItem},
				{Method: http.MethodDelete, Path: "/:id/items/:itemId", Handler: draftHandler.RemoveItem},
				{Method: http.MethodPatch, Path: "/:id/custom-item", Handler: draftHandler.SetCustomItem},
				{Method: http.MethodPost, Path: "/:id/custom-item/commit", Handler: draftHandler.CommitCustomItem},
				{Method: http.MethodPost, Path: "/:id/reset", Handler: draftHandler.ResetDraft},
				{Method: http.MethodPost, Path: "/:id/save", Handler: draftHandler.SaveDraft},
			})
		}

		offers := apiGroup.Group("/offers")
		offers.Use(authMiddleware.RequireAuth())
		{
			addRoutes(offers, []route{
				{Method: http.MethodGet, Path: "", Handler: offerHandler.ListMyOffers},
				{Method: http.MethodGet, Path: "/:id", Handler: offerHandler.GetOffer},
				{Method: http.MethodPost, Path: "/:id/send", Handler: offerHandler.SendOffer},
			})
		}

		oversight := apiGroup.Group("/oversight")
		oversight.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleManager))
		{
			addRoutes(oversight, []route{
				{Method: http.MethodGet, Path: "/offers", Handler: offerHandler.ListAllOffers},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
