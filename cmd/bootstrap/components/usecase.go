package components

import (
	"eventcrm/internal/domain/offer"
	"eventcrm/internal/infra/relayclient"
	"eventcrm/internal/pkg/clock"
	"eventcrm/internal/pkg/config"
	"eventcrm/internal/usecase"
	"eventcrm/internal/usecase/commands"
	"eventcrm/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewDraftPolicy,
	NewRelaySender,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewDraftCommands,
		commands.NewOfferCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewCatalogQueries,
		queries.NewOfferQueries,
		queries.NewDraftQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewDraftPolicy(cfg config.Config) offer.Policy {
	return offer.Policy{
		ClampDiscountPercent:  cfg.Offer.ClampDiscountPercent,
		RejectNegativeAmounts: cfg.Offer.RejectNegativeAmounts,
	}
}

// NewRelaySender points the CRM at the relay worker. Offer emails always go
// through the relay contract, even when both run on the same host.
func NewRelaySender(cfg config.Config) commands.RelaySender {
	timeout := cfg.Relay.ConnectTimeout + cfg.Relay.SocketTimeout
	return relayclient.New(cfg.Relay.BaseURL, cfg.Relay.Secret, timeout)
}
