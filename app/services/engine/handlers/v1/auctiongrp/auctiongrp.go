// Package auctiongrp maintains the group of handlers for auction access.
package auctiongrp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ardanlabs/lupa/business/web/errs"
	"github.com/ardanlabs/lupa/foundation/events"
	"github.com/ardanlabs/lupa/foundation/lupa/bank"
	"github.com/ardanlabs/lupa/foundation/lupa/engine"
	"github.com/ardanlabs/lupa/foundation/nameservice"
	"github.com/ardanlabs/lupa/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of auction endpoints.
type Handlers struct {
	Log    *zap.SugaredLogger
	Engine *engine.Engine
	Bank   *bank.Bank
	NS     *nameservice.NameService
	WS     websocket.Upgrader
	Evts   *events.Events
}

// Bid accepts a signed sealed bid during the bidding phase.
func (h Handlers) Bid(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var app submitBid
	if err := web.Decode(r, &app); err != nil {
		return err
	}

	signedOp := engine.SignedOp{
		Op: engine.NewBidOp(app.Hash, app.Amount),
		V:  app.V,
		R:  app.R,
		S:  app.S,
	}

	account, err := signedOp.FromAccount()
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("add bid", "traceid", web.GetTraceID(ctx), "account", account, "amount", app.Amount)
	if err := h.Engine.Bid(signedOp); err != nil {
		return trustedError(err)
	}

	result := bidResult{
		Account: account,
		Name:    h.NS.Lookup(account),
		Amount:  app.Amount,
		Status:  "bid committed",
	}

	return web.Respond(ctx, w, result, http.StatusOK)
}

// Reveal accepts a signed disclosure during the reveal phase.
func (h Handlers) Reveal(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var app submitReveal
	if err := web.Decode(r, &app); err != nil {
		return err
	}

	signedOp := engine.SignedOp{
		Op: engine.NewRevealOp(app.Nonce, app.Value),
		V:  app.V,
		R:  app.R,
		S:  app.S,
	}

	account, err := signedOp.FromAccount()
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("add reveal", "traceid", web.GetTraceID(ctx), "account", account, "value", app.Value)
	revealed, err := h.Engine.Reveal(signedOp)
	if err != nil {
		return trustedError(err)
	}

	result := revealResult{
		Account:      account,
		Name:         h.NS.Lookup(account),
		Value:        app.Value,
		Valid:        revealed.Valid,
		BucketCount:  revealed.Bucket.Count,
		Unmatched:    revealed.Bucket.Unmatched,
		Finished:     revealed.Finished,
		Winner:       revealed.Winner,
		WinningValue: revealed.WinningValue,
	}

	return web.Respond(ctx, w, result, http.StatusOK)
}

// Withdraw releases a participant's deposit once bidding is over.
func (h Handlers) Withdraw(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var app submitSigned
	if err := web.Decode(r, &app); err != nil {
		return err
	}

	signedOp := engine.SignedOp{
		Op: engine.NewWithdrawOp(),
		V:  app.V,
		R:  app.R,
		S:  app.S,
	}

	account, err := signedOp.FromAccount()
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("add withdraw", "traceid", web.GetTraceID(ctx), "account", account)
	amount, err := h.Engine.Withdraw(signedOp)
	if err != nil {
		return trustedError(err)
	}

	result := withdrawResult{
		Account: account,
		Name:    h.NS.Lookup(account),
		Amount:  amount,
		Status:  "deposit withdrawn",
	}

	return web.Respond(ctx, w, result, http.StatusOK)
}

// State returns the current auction state.
func (h Handlers) State(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	state := h.Engine.RetrieveState()
	return web.Respond(ctx, w, toStateResult(state), http.StatusOK)
}

// Balance returns the bank balance for the specified account.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accountStr := web.Param(r, "account")

	account, err := bank.ToAccountID(accountStr)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	result := balanceResult{
		Account: account,
		Name:    h.NS.Lookup(account),
		Balance: h.Bank.Balance(account),
	}

	return web.Respond(ctx, w, result, http.StatusOK)
}

// Events handles a web socket to provide the auction's observable events
// to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case event, wd := <-ch:
			if !wd {
				return nil
			}

			data, err := json.Marshal(event)
			if err != nil {
				return err
			}

			if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// =============================================================================

// trustedError maps the engine's precondition failures to client-facing
// status codes. Anything unrecognized propagates as a 500.
func trustedError(err error) error {
	switch {
	case errors.Is(err, engine.ErrWrongPhase),
		errors.Is(err, engine.ErrAuctionNotFinished):
		return errs.NewTrusted(err, http.StatusConflict)

	case errors.Is(err, engine.ErrNotOwner):
		return errs.NewTrusted(err, http.StatusForbidden)

	case errors.Is(err, engine.ErrInsufficientDeposit),
		errors.Is(err, engine.ErrNoBidToReveal),
		errors.Is(err, engine.ErrNoDepositToWithdraw),
		errors.Is(err, engine.ErrAlreadyCommitted),
		errors.Is(err, engine.ErrAlreadyRevealed),
		errors.Is(err, engine.ErrInvalidValue),
		errors.Is(err, bank.ErrInsufficientFunds):
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	return err
}
