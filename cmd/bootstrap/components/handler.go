package components

import (
	"eventcrm/internal/handler"
	"eventcrm/internal/handler/api"
	"eventcrm/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewCatalogHandler,
		api.NewDraftHandler,
		api.NewOfferHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
