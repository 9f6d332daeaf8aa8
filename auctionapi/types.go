package auctionapi

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// BidRecord is a single disclosed bid in an auction round's bid log,
// in placement order.
type BidRecord struct {
	Bidder string `json:"bidder"`
	Amount int64  `json:"amount"`
}

// WinningBid identifies the winner of a closed round.
type WinningBid struct {
	Bidder string `json:"bidder"`
	Amount int64  `json:"amount"`
}

// OutcomeRecord is the auditable transcript of one auction close.
//
// The bid hashes commit the record to the exact bid sequence without
// disclosing it; the round hash commits it to the auction identity and
// floor. Given the disclosed bid log and the nonces, a validator can
// recompute every field independently.
type OutcomeRecord struct {
	AuctionID          string      `json:"auction_id"`
	Round              int         `json:"round"`
	MinBid             int64       `json:"min_bid"`
	TieBreakerFirstBid bool        `json:"tie_breaker_first_bid"`
	Winner             *WinningBid `json:"winner,omitempty"`
	Reason             string      `json:"reason"`
	TieCount           int         `json:"tie_count"`
	BidHashes          []string    `json:"bid_hashes"`
	BidHashNonce       string      `json:"bid_hash_nonce"`
	RoundHash          string      `json:"round_hash"`
	RoundNonce         string      `json:"round_nonce"`
	Timestamp          time.Time   `json:"timestamp"`
}

// EncodeCBOR serializes the record as CBOR, the payload format carried
// inside a signed outcome.
func (r *OutcomeRecord) EncodeCBOR() ([]byte, error) {
	data, err := cbor.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode outcome record: %w", err)
	}
	return data, nil
}

// DecodeOutcomeRecord parses a CBOR-encoded outcome record.
func DecodeOutcomeRecord(data []byte) (*OutcomeRecord, error) {
	var rec OutcomeRecord
	if err := cbor.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode outcome record: %w", err)
	}
	return &rec, nil
}

// OutcomeCOSE contains raw COSE_Sign1 bytes wrapping a CBOR outcome record.
type OutcomeCOSE []byte

// OutcomeCOSEBase64 contains base64-encoded COSE_Sign1 bytes, the form used
// for JSON transport and CLI input.
type OutcomeCOSEBase64 string

// EncodeBase64 converts raw COSE bytes to their base64 transport form.
func (c OutcomeCOSE) EncodeBase64() OutcomeCOSEBase64 {
	return OutcomeCOSEBase64(base64.StdEncoding.EncodeToString(c))
}

// Decode converts the base64 transport form back to raw COSE bytes.
func (c OutcomeCOSEBase64) Decode() (OutcomeCOSE, error) {
	data, err := base64.StdEncoding.DecodeString(string(c))
	if err != nil {
		return nil, fmt.Errorf("decode base64 COSE bytes: %w", err)
	}
	return OutcomeCOSE(data), nil
}
