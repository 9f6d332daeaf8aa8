package auctioneer

import (
	"errors"
	"testing"

	"github.com/peterldowns/testy/check"

	"github.com/cloudx-io/uniquebid/auctionapi"
	"github.com/cloudx-io/uniquebid/core"
)

func TestSession_TieRestartFlow(t *testing.T) {
	s := NewSession(10)
	check.NotEqual(t, "", s.AuctionID())
	check.Equal(t, 1, s.Round())
	check.Equal(t, int64(10), s.MinBid())

	check.NoError(t, s.PlaceBid("Bidder1", 15))
	check.NoError(t, s.PlaceBid("Bidder2", 20))
	check.NoError(t, s.PlaceBid("Bidder3", 20))

	rec, err := s.Close(false)
	check.NoError(t, err)
	check.Nil(t, rec.Winner)
	check.Equal(t, string(core.ReasonTieUnresolved), rec.Reason)
	check.Equal(t, 2, rec.TieCount)
	check.Equal(t, s.AuctionID(), rec.AuctionID)
	check.Equal(t, 1, rec.Round)
	check.Equal(t, int64(10), rec.MinBid)

	newMin := s.Restart()
	check.Equal(t, int64(21), newMin)
	check.Equal(t, 2, s.Round())
	check.Equal(t, 0, len(s.BidLog()))

	// A bid at the tied amount is now below the floor.
	err = s.PlaceBid("Bidder1", 20)
	var invalid *core.InvalidBidError
	check.True(t, errors.As(err, &invalid))

	check.NoError(t, s.PlaceBid("Bidder4", 25))
	check.NoError(t, s.PlaceBid("Bidder5", 25))

	rec, err = s.Close(true)
	check.NoError(t, err)
	check.NotNil(t, rec.Winner)
	check.Equal(t, "Bidder4", rec.Winner.Bidder)
	check.Equal(t, int64(25), rec.Winner.Amount)
	check.Equal(t, string(core.ReasonTieFirstBid), rec.Reason)
	check.Equal(t, 2, rec.Round)
	check.Equal(t, int64(21), rec.MinBid)
}

func TestSession_CloseCommitsBidLogInPlacementOrder(t *testing.T) {
	s := NewSession(10)
	check.NoError(t, s.PlaceBid("Bidder1", 15))
	check.NoError(t, s.PlaceBid("Bidder2", 20))
	check.NoError(t, s.PlaceBid("Bidder1", 18))

	rec, err := s.Close(false)
	check.NoError(t, err)

	bids := s.BidLog()
	check.Equal(t, []auctionapi.BidRecord{
		{Bidder: "Bidder1", Amount: 15},
		{Bidder: "Bidder2", Amount: 20},
		{Bidder: "Bidder1", Amount: 18},
	}, bids)

	// Every committed hash must be reproducible from the disclosed log.
	check.Equal(t, len(bids), len(rec.BidHashes))
	for i, bid := range bids {
		check.Equal(t, core.ComputeBidHash(bid.Bidder, bid.Amount, rec.BidHashNonce), rec.BidHashes[i])
	}
	check.Equal(t, core.ComputeRoundHash(rec.AuctionID, rec.Round, rec.MinBid, rec.RoundNonce), rec.RoundHash)
	check.NotEqual(t, rec.BidHashNonce, rec.RoundNonce)
}

func TestSession_RejectedBidsStayOutOfTheLog(t *testing.T) {
	s := NewSession(10)
	check.NoError(t, s.PlaceBid("Bidder1", 15))

	err := s.PlaceBid("Bidder2", 5)
	var invalid *core.InvalidBidError
	check.True(t, errors.As(err, &invalid))
	check.Equal(t, 1, len(s.BidLog()))
}

func TestSession_EmptyClose(t *testing.T) {
	s := NewSession(10)
	rec, err := s.Close(false)
	check.NoError(t, err)
	check.Nil(t, rec.Winner)
	check.Equal(t, string(core.ReasonNoBids), rec.Reason)
	check.Equal(t, 0, len(rec.BidHashes))
	check.Equal(t, 0, rec.TieCount)
	check.False(t, rec.Timestamp.IsZero())
}

func TestSession_BidsRejectedAfterDecisiveClose(t *testing.T) {
	s := NewSession(10)
	check.NoError(t, s.PlaceBid("Bidder1", 15))
	_, err := s.Close(false)
	check.NoError(t, err)

	err = s.PlaceBid("Bidder2", 30)
	check.True(t, errors.Is(err, core.ErrNotOpen))
}
