// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/lupa/app/services/engine/handlers/v1/auctiongrp"
	"github.com/ardanlabs/lupa/app/services/engine/handlers/v1/ownergrp"
	"github.com/ardanlabs/lupa/foundation/events"
	"github.com/ardanlabs/lupa/foundation/lupa/bank"
	"github.com/ardanlabs/lupa/foundation/lupa/engine"
	"github.com/ardanlabs/lupa/foundation/nameservice"
	"github.com/ardanlabs/lupa/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log    *zap.SugaredLogger
	Engine *engine.Engine
	Bank   *bank.Bank
	NS     *nameservice.NameService
	Evts   *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	agh := auctiongrp.Handlers{
		Log:    cfg.Log,
		Engine: cfg.Engine,
		Bank:   cfg.Bank,
		NS:     cfg.NS,
		Evts:   cfg.Evts,
	}

	app.Handle(http.MethodPost, version, "/auction/bid", agh.Bid)
	app.Handle(http.MethodPost, version, "/auction/reveal", agh.Reveal)
	app.Handle(http.MethodPost, version, "/auction/withdraw", agh.Withdraw)
	app.Handle(http.MethodGet, version, "/auction/state", agh.State)
	app.Handle(http.MethodGet, version, "/accounts/:account", agh.Balance)
	app.Handle(http.MethodGet, version, "/events", agh.Events)
}

// PrivateRoutes binds all the version 1 private routes.
func PrivateRoutes(app *web.App, cfg Config) {
	ogh := ownergrp.Handlers{
		Log:    cfg.Log,
		Engine: cfg.Engine,
	}

	app.Handle(http.MethodPost, version, "/auction/sweep", ogh.Sweep)
	app.Handle(http.MethodGet, version, "/auction/participants", ogh.Participants)
}
