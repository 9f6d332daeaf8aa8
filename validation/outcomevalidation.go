package validation

import (
	"fmt"

	"github.com/cloudx-io/uniquebid/auctionapi"
	"github.com/cloudx-io/uniquebid/core"
)

// OutcomeValidationInput contains all inputs needed to validate a signed
// auction outcome against the disclosed bid log.
type OutcomeValidationInput struct {
	OutcomeCOSEBase64 auctionapi.OutcomeCOSEBase64 // Signed outcome as published by the auctioneer
	PublicKeyPEM      string                       // Auctioneer's PEM-encoded ECDSA public key
	Bids              []auctionapi.BidRecord       // Disclosed bids in placement order
}

// ValidateOutcome validates a signed auction outcome record and verifies:
// - The COSE signature over the record
// - Every disclosed bid is committed in the record's hash list, in order
// - The round hash matches the record's auction identity and floor
// - Replaying the disclosed bids reproduces the recorded winner and reason
//
// Returns:
//   - OutcomeValidationResult with detailed results (call result.IsValid()
//     to check overall status)
//   - error if validation cannot be performed (e.g., malformed input)
func ValidateOutcome(input *OutcomeValidationInput) (*OutcomeValidationResult, error) {
	coseBytes, err := input.OutcomeCOSEBase64.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode signed outcome: %w", err)
	}

	publicKey, err := ParsePublicKeyPEM(input.PublicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	result := &OutcomeValidationResult{}

	payload, err := VerifyOutcomeSignature(coseBytes, publicKey)
	if err != nil {
		result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Signature verification failed: %v", err))
		// Continue with the unverified payload so the caller sees which
		// other checks would have passed.
		payload, err = ExtractCOSEPayload(coseBytes)
		if err != nil {
			return nil, fmt.Errorf("extract outcome payload: %w", err)
		}
	} else {
		result.SignatureValid = true
		result.ValidationDetails = append(result.ValidationDetails, "COSE signature verified")
	}

	record, err := auctionapi.DecodeOutcomeRecord(payload)
	if err != nil {
		return nil, fmt.Errorf("decode outcome record: %w", err)
	}

	result.BidHashesValid = validateBidHashes(input.Bids, record, result)
	result.RoundHashValid = validateRoundHash(record, result)
	result.OutcomeValid = validateOutcomeByReplay(input.Bids, record, result)

	return result, nil
}

// validateBidHashes recomputes the hash of every disclosed bid under the
// record's nonce and requires an exact, ordered match with the attested list.
func validateBidHashes(bids []auctionapi.BidRecord, record *auctionapi.OutcomeRecord, result *OutcomeValidationResult) bool {
	if record.BidHashNonce == "" {
		result.ValidationDetails = append(result.ValidationDetails, "Bid hash nonce missing from record")
		return false
	}

	if len(bids) != len(record.BidHashes) {
		result.ValidationDetails = append(result.ValidationDetails,
			fmt.Sprintf("Bid count mismatch: %d disclosed, %d committed", len(bids), len(record.BidHashes)))
		return false
	}

	for i, bid := range bids {
		computed := core.ComputeBidHash(bid.Bidder, bid.Amount, record.BidHashNonce)
		if computed != record.BidHashes[i] {
			result.ValidationDetails = append(result.ValidationDetails,
				fmt.Sprintf("Bid hash mismatch at position %d: computed %s", i, computed))
			return false
		}
	}

	result.ValidationDetails = append(result.ValidationDetails,
		fmt.Sprintf("All %d bid hashes match in placement order", len(bids)))
	return true
}

func validateRoundHash(record *auctionapi.OutcomeRecord, result *OutcomeValidationResult) bool {
	computed := core.ComputeRoundHash(record.AuctionID, record.Round, record.MinBid, record.RoundNonce)
	if computed != record.RoundHash {
		result.ValidationDetails = append(result.ValidationDetails,
			fmt.Sprintf("Round hash mismatch: computed %s, record has %s", computed, record.RoundHash))
		return false
	}
	result.ValidationDetails = append(result.ValidationDetails, "Round hash matches")
	return true
}

// validateOutcomeByReplay replays the disclosed bids through a fresh
// registry at the record's floor and checks that closing with the record's
// tie-break policy reproduces the recorded outcome.
func validateOutcomeByReplay(bids []auctionapi.BidRecord, record *auctionapi.OutcomeRecord, result *OutcomeValidationResult) bool {
	registry := core.NewRegistry(record.MinBid)
	for _, bid := range bids {
		if err := registry.PlaceBid(bid.Bidder, bid.Amount); err != nil {
			result.ValidationDetails = append(result.ValidationDetails,
				fmt.Sprintf("Disclosed bid (%s, %d) is not replayable: %v", bid.Bidder, bid.Amount, err))
			return false
		}
	}

	outcome := registry.CloseAuction(record.TieBreakerFirstBid)

	if string(outcome.Reason) != record.Reason {
		result.ValidationDetails = append(result.ValidationDetails,
			fmt.Sprintf("Outcome reason mismatch: replay produced %q, record has %q", outcome.Reason, record.Reason))
		return false
	}

	if outcome.TieCount != record.TieCount {
		result.ValidationDetails = append(result.ValidationDetails,
			fmt.Sprintf("Tie count mismatch: replay produced %d, record has %d", outcome.TieCount, record.TieCount))
		return false
	}

	if outcome.Winner == nil {
		if record.Winner != nil {
			result.ValidationDetails = append(result.ValidationDetails,
				fmt.Sprintf("Winner mismatch: replay produced no winner, record names %s", record.Winner.Bidder))
			return false
		}
		result.ValidationDetails = append(result.ValidationDetails, "Outcome matches replay: no winner")
		return true
	}

	if record.Winner == nil {
		result.ValidationDetails = append(result.ValidationDetails,
			fmt.Sprintf("Winner mismatch: replay produced %s, record has no winner", outcome.Winner.Bidder))
		return false
	}

	if outcome.Winner.Bidder != record.Winner.Bidder || outcome.Winner.Amount != record.Winner.Amount {
		result.ValidationDetails = append(result.ValidationDetails,
			fmt.Sprintf("Winner mismatch: replay produced %s at %d, record has %s at %d",
				outcome.Winner.Bidder, outcome.Winner.Amount, record.Winner.Bidder, record.Winner.Amount))
		return false
	}

	result.ValidationDetails = append(result.ValidationDetails,
		fmt.Sprintf("Outcome matches replay: winner %s at %d", record.Winner.Bidder, record.Winner.Amount))
	return true
}
