package core

import (
	"crypto/sha256"
	"fmt"
)

// ComputeBidHash computes the canonical hash of a single bid.
// This is used by both the auctioneer (to commit an outcome record to the
// exact bid set) and validation (to verify that commitment).
//
// Formula: SHA256(bidder + "|" + amount + "|" + nonce)
//
// The amount is formatted in base 10 so the hash is independent of how the
// integer is represented in memory.
func ComputeBidHash(bidder string, amount int64, nonce string) string {
	data := fmt.Sprintf("%s|%d|%s", bidder, amount, nonce)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// ComputeRoundHash computes the canonical hash of an auction round.
// This is used by both the auctioneer (to generate hashes) and validation
// (to verify hashes).
//
// Formula: SHA256(auction_id + "|" + round + "|" + min_bid + "|" + nonce)
func ComputeRoundHash(auctionID string, round int, minBid int64, nonce string) string {
	data := fmt.Sprintf("%s|%d|%d|%s", auctionID, round, minBid, nonce)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
