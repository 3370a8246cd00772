// Package ownergrp maintains the group of owner-restricted handlers served
// on the private mux.
package ownergrp

import (
	"context"
	"errors"
	"math/big"
	"net/http"

	"github.com/ardanlabs/lupa/business/web/errs"
	"github.com/ardanlabs/lupa/foundation/lupa/bank"
	"github.com/ardanlabs/lupa/foundation/lupa/engine"
	"github.com/ardanlabs/lupa/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of owner endpoints. Ownership is proven by the
// signature on the operation, not by reaching the private mux.
type Handlers struct {
	Log    *zap.SugaredLogger
	Engine *engine.Engine
}

// submitSweep is what the owner wallet sends to collect unrevealed deposits.
type submitSweep struct {
	V *big.Int `json:"v" validate:"required"`
	R *big.Int `json:"r" validate:"required"`
	S *big.Int `json:"s" validate:"required"`
}

// sweepResult is returned after a sweep completes.
type sweepResult struct {
	Owner  bank.AccountID `json:"owner"`
	Amount uint64         `json:"amount"`
	Status string         `json:"status"`
}

// participantRecord is the owner's view of one participant.
type participantRecord struct {
	Account  bank.AccountID `json:"account"`
	Deposit  uint64         `json:"deposit"`
	Revealed bool           `json:"revealed"`
	Value    uint64         `json:"value"`
	Valid    bool           `json:"valid"`
	Settled  bool           `json:"settled"`
}

// Sweep collects the deposits of participants who never revealed. Only a
// sweep signed by the auction owner succeeds.
func (h Handlers) Sweep(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var app submitSweep
	if err := web.Decode(r, &app); err != nil {
		return err
	}

	signedOp := engine.SignedOp{
		Op: engine.NewSweepOp(),
		V:  app.V,
		R:  app.R,
		S:  app.S,
	}

	account, err := signedOp.FromAccount()
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("add sweep", "traceid", web.GetTraceID(ctx), "account", account)
	amount, err := h.Engine.Sweep(signedOp)
	if err != nil {
		return trustedError(err)
	}

	result := sweepResult{
		Owner:  account,
		Amount: amount,
		Status: "unrevealed deposits swept",
	}

	return web.Respond(ctx, w, result, http.StatusOK)
}

// Participants returns the full participant table.
func (h Handlers) Participants(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	participants := h.Engine.RetrieveParticipants()

	records := make([]participantRecord, 0, len(participants))
	for account, rec := range participants {
		records = append(records, participantRecord{
			Account:  account,
			Deposit:  rec.Deposit,
			Revealed: rec.Revealed,
			Value:    rec.Value,
			Valid:    rec.Valid,
			Settled:  rec.Settled,
		})
	}

	return web.Respond(ctx, w, records, http.StatusOK)
}

// trustedError maps the engine's precondition failures to client-facing
// status codes.
func trustedError(err error) error {
	switch {
	case errors.Is(err, engine.ErrNotOwner):
		return errs.NewTrusted(err, http.StatusForbidden)

	case errors.Is(err, engine.ErrAuctionNotFinished),
		errors.Is(err, engine.ErrWrongPhase):
		return errs.NewTrusted(err, http.StatusConflict)
	}

	return err
}
