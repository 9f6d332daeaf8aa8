package core

import (
	"sync"
)

// Registry holds the state of one unique-highest-bid auction round.
//
// Bids are grouped by amount with insertion order preserved, and the running
// maximum is tracked incrementally so closing never scans the whole map.
// All operations are safe for concurrent use; each mutation is a single
// O(1) critical section.
type Registry struct {
	mu sync.RWMutex

	minBid       int64
	bidsByAmount map[int64][]string

	// currentMax and currentMaxCount are maintained on every accepted bid,
	// never recomputed from the map. hasBids distinguishes "no bids yet"
	// from a real maximum, so an empty close is unambiguous.
	currentMax      int64
	currentMaxCount int
	hasBids         bool

	bidCount int
	phase    Phase
}

// NewRegistry creates an open registry with the given floor bid.
func NewRegistry(minBid int64) *Registry {
	return &Registry{
		minBid:       minBid,
		bidsByAmount: make(map[int64][]string),
		phase:        PhaseOpen,
	}
}

// PlaceBid records a bid for bidder at the given amount.
//
// Amounts below the current minimum are rejected with *InvalidBidError and
// leave the registry untouched. The same bidder may bid the same amount more
// than once; both entries are recorded (deduplication is caller policy).
func (r *Registry) PlaceBid(bidder string, amount int64) error {
	if bidder == "" {
		return ErrEmptyBidder
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseOpen {
		return ErrNotOpen
	}
	if amount < r.minBid {
		return &InvalidBidError{Bidder: bidder, Amount: amount, MinBid: r.minBid}
	}

	r.bidsByAmount[amount] = append(r.bidsByAmount[amount], bidder)
	r.bidCount++

	switch {
	case !r.hasBids || amount > r.currentMax:
		r.currentMax = amount
		r.currentMaxCount = 1
		r.hasBids = true
	case amount == r.currentMax:
		r.currentMaxCount++
	}

	return nil
}

// CloseAuction resolves the auction and returns the outcome.
//
// An empty auction and an unresolved tie are normal outcomes with a nil
// Winner, never errors. The recorded bids are left untouched, so closing
// twice with the same policy yields the same outcome. Closing moves the
// phase to PhaseClosed, or to PhaseAwaitingRestart when a tie is left
// unresolved so the caller can raise the floor and reopen.
func (r *Registry) CloseAuction(tieBreakerFirstBid bool) *Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hasBids {
		r.phase = PhaseClosed
		return &Outcome{Reason: ReasonNoBids}
	}

	top := r.bidsByAmount[r.currentMax]

	if r.currentMaxCount == 1 {
		r.phase = PhaseClosed
		return &Outcome{
			Winner:   &Bid{Bidder: top[0], Amount: r.currentMax},
			Reason:   ReasonUniqueHighBid,
			TieCount: 1,
		}
	}

	if tieBreakerFirstBid {
		// Earliest bidder at the top amount wins; order within the
		// sequence is placement order, so element 0 is the first bid.
		r.phase = PhaseClosed
		return &Outcome{
			Winner:   &Bid{Bidder: top[0], Amount: r.currentMax},
			Reason:   ReasonTieFirstBid,
			TieCount: r.currentMaxCount,
		}
	}

	r.phase = PhaseAwaitingRestart
	return &Outcome{
		Reason:   ReasonTieUnresolved,
		TieCount: r.currentMaxCount,
	}
}

// RestartAuction clears all bids and reopens the registry for a new round.
//
// When bids were recorded, the new floor is one above the previous maximum,
// forcing strictly higher bids and guaranteeing progress toward a unique
// winner. Restarting an empty registry keeps the floor unchanged.
func (r *Registry) RestartAuction() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hasBids {
		r.minBid = r.currentMax + 1
	}
	r.bidsByAmount = make(map[int64][]string)
	r.currentMax = 0
	r.currentMaxCount = 0
	r.hasBids = false
	r.bidCount = 0
	r.phase = PhaseOpen
}

// MinBid returns the lowest amount currently acceptable.
func (r *Registry) MinBid() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.minBid
}

// Phase returns the current lifecycle phase.
func (r *Registry) Phase() Phase {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.phase
}

// CurrentMax returns the highest accepted amount, the number of bids at that
// amount, and whether any bids have been recorded since the last restart.
func (r *Registry) CurrentMax() (amount int64, count int, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.hasBids {
		return 0, 0, false
	}
	return r.currentMax, r.currentMaxCount, true
}

// BidCount returns the total number of bids accepted since the last restart.
func (r *Registry) BidCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bidCount
}

// BiddersAt returns a copy of the bidder sequence recorded at amount, in
// placement order. The copy keeps callers from aliasing registry state.
func (r *Registry) BiddersAt(amount int64) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seq := r.bidsByAmount[amount]
	if len(seq) == 0 {
		return nil
	}
	out := make([]string, len(seq))
	copy(out, seq)
	return out
}
