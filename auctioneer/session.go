// Package auctioneer runs unique-highest-bid auction sessions on top of the
// core registry: it logs bid activity, tracks rounds across restarts, and
// produces signed, auditable outcome records at close time.
package auctioneer

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cloudx-io/uniquebid/auctionapi"
	"github.com/cloudx-io/uniquebid/core"
)

// Session owns one auction registry plus the disclosed bid log for the
// current round. The log keeps global placement order, which the registry
// itself only keeps per amount, so outcome records can commit to the full
// bid sequence.
type Session struct {
	mu        sync.Mutex
	auctionID string
	round     int
	registry  *core.Registry
	bidLog    []auctionapi.BidRecord
}

// NewSession opens a new auction with the given floor bid and a fresh
// auction identifier.
func NewSession(minBid int64) *Session {
	s := &Session{
		auctionID: uuid.NewString(),
		round:     1,
		registry:  core.NewRegistry(minBid),
	}
	log.Printf("INFO: Auction %s opened: round 1, minimum bid %d", s.auctionID, minBid)
	return s
}

// PlaceBid records a bid in the current round.
// Rejections are logged and returned unchanged from the registry.
func (s *Session) PlaceBid(bidder string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevMax, prevCount, hadBids := s.registry.CurrentMax()

	if err := s.registry.PlaceBid(bidder, amount); err != nil {
		var invalid *core.InvalidBidError
		switch {
		case errors.As(err, &invalid):
			log.Printf("INFO: Bid of %d from %s is below the minimum bid of %d, discarded", amount, bidder, invalid.MinBid)
		case errors.Is(err, core.ErrNotOpen):
			log.Printf("WARNING: Bid of %d from %s rejected: auction %s is not open", amount, bidder, s.auctionID)
		default:
			log.Printf("WARNING: Bid of %d from %s rejected: %v", amount, bidder, err)
		}
		return err
	}

	s.bidLog = append(s.bidLog, auctionapi.BidRecord{Bidder: bidder, Amount: amount})
	log.Printf("INFO: Bid of %d placed by %s", amount, bidder)

	newMax, newCount, _ := s.registry.CurrentMax()
	if !hadBids || newMax > prevMax {
		log.Printf("INFO: New current max bid is %d", newMax)
	} else if newMax == prevMax && newCount > prevCount {
		log.Printf("INFO: Current max bid %d now has %d bids", newMax, newCount)
	}
	return nil
}

// Close resolves the current round and builds its auditable outcome record:
// per-bid hashes in placement order under a fresh nonce, the round hash, and
// the resolved winner (if any).
func (s *Session) Close(tieBreakerFirstBid bool) (*auctionapi.OutcomeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := s.registry.CloseAuction(tieBreakerFirstBid)

	bidHashNonce, err := generateNonce()
	if err != nil {
		return nil, fmt.Errorf("failed to generate bid hash nonce: %w", err)
	}
	roundNonce, err := generateNonce()
	if err != nil {
		return nil, fmt.Errorf("failed to generate round nonce: %w", err)
	}

	bidHashes := make([]string, 0, len(s.bidLog))
	for _, bid := range s.bidLog {
		bidHashes = append(bidHashes, core.ComputeBidHash(bid.Bidder, bid.Amount, bidHashNonce))
	}

	minBid := s.registry.MinBid()
	rec := &auctionapi.OutcomeRecord{
		AuctionID:          s.auctionID,
		Round:              s.round,
		MinBid:             minBid,
		TieBreakerFirstBid: tieBreakerFirstBid,
		Reason:             string(outcome.Reason),
		TieCount:           outcome.TieCount,
		BidHashes:          bidHashes,
		BidHashNonce:       bidHashNonce,
		RoundHash:          core.ComputeRoundHash(s.auctionID, s.round, minBid, roundNonce),
		RoundNonce:         roundNonce,
		Timestamp:          time.Now().UTC(),
	}

	switch outcome.Reason {
	case core.ReasonNoBids:
		log.Printf("INFO: Auction %s round %d closed with no bids", s.auctionID, s.round)
	case core.ReasonTieUnresolved:
		maxAmount, _, _ := s.registry.CurrentMax()
		log.Printf("WARNING: Tie detected at %d in auction %s round %d, restart required with new minimum bid %d",
			maxAmount, s.auctionID, s.round, maxAmount+1)
	default:
		rec.Winner = &auctionapi.WinningBid{
			Bidder: outcome.Winner.Bidder,
			Amount: outcome.Winner.Amount,
		}
		log.Printf("INFO: The winner of auction %s round %d is %s with a bid of %d (%s)",
			s.auctionID, s.round, outcome.Winner.Bidder, outcome.Winner.Amount, outcome.Reason)
	}

	return rec, nil
}

// Restart clears the round after an unresolved tie and reopens bidding at
// the raised floor. Returns the new minimum bid.
func (s *Session) Restart() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registry.RestartAuction()
	s.round++
	s.bidLog = nil

	minBid := s.registry.MinBid()
	log.Printf("INFO: Auction %s restarted: round %d, new minimum bid %d", s.auctionID, s.round, minBid)
	return minBid
}

// AuctionID returns the session's auction identifier.
func (s *Session) AuctionID() string {
	return s.auctionID
}

// Round returns the current round number, starting at 1.
func (s *Session) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// MinBid returns the lowest amount currently acceptable.
func (s *Session) MinBid() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.MinBid()
}

// BidLog returns a copy of the current round's bids in placement order,
// for disclosure to outcome validators.
func (s *Session) BidLog() []auctionapi.BidRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]auctionapi.BidRecord, len(s.bidLog))
	copy(out, s.bidLog)
	return out
}
