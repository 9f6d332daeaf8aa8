package core

import (
	"errors"
	"fmt"
)

// Bid represents a single accepted bid. Bids are immutable once recorded.
type Bid struct {
	Bidder string `json:"bidder"`
	Amount int64  `json:"amount"`
}

// Phase tracks the caller-visible lifecycle of a registry.
// Phase enforcement guards against bids landing after a decisive close;
// it does not change any close or restart result.
type Phase string

const (
	// PhaseOpen means the registry is accepting bids.
	PhaseOpen Phase = "open"

	// PhaseClosed means the auction closed with a winner or closed empty.
	PhaseClosed Phase = "closed"

	// PhaseAwaitingRestart means the auction closed on an unresolved tie
	// and needs RestartAuction before accepting bids again.
	PhaseAwaitingRestart Phase = "awaiting_restart"
)

// OutcomeReason explains how a close was resolved.
type OutcomeReason string

const (
	// ReasonUniqueHighBid: exactly one bidder held the highest amount.
	ReasonUniqueHighBid OutcomeReason = "unique_high_bid"

	// ReasonTieFirstBid: several bidders tied at the top and the
	// first-bid tie-break policy selected the earliest of them.
	ReasonTieFirstBid OutcomeReason = "tie_first_bid"

	// ReasonTieUnresolved: several bidders tied at the top and the
	// policy requires a restart, so there is no winner.
	ReasonTieUnresolved OutcomeReason = "tie_unresolved"

	// ReasonNoBids: the auction closed without any recorded bids.
	ReasonNoBids OutcomeReason = "no_bids"
)

// Outcome is the result of closing an auction.
// A nil Winner is a normal result (tie or empty auction), not an error.
type Outcome struct {
	// Winner is the winning bid, or nil when the close produced no winner.
	Winner *Bid

	// Reason records how the outcome was resolved.
	Reason OutcomeReason

	// TieCount is the number of bids at the highest amount
	// (0 for an empty auction).
	TieCount int
}

// InvalidBidError reports a bid below the current minimum.
// The bid is rejected and registry state is unchanged.
type InvalidBidError struct {
	Bidder string
	Amount int64
	MinBid int64
}

func (e *InvalidBidError) Error() string {
	return fmt.Sprintf("bid of %d from %s is below the minimum bid of %d", e.Amount, e.Bidder, e.MinBid)
}

// ErrEmptyBidder is returned when a bid carries no bidder identifier.
var ErrEmptyBidder = errors.New("bidder identifier must not be empty")

// ErrNotOpen is returned by PlaceBid when the registry is not in PhaseOpen.
var ErrNotOpen = errors.New("registry is not open for bidding")
