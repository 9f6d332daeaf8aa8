package auctioneer

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/veraison/go-cose"

	"github.com/cloudx-io/uniquebid/auctionapi"
)

// generateSecureRandomBytes generates cryptographically secure random bytes.
func generateSecureRandomBytes(length int) ([]byte, error) {
	randomBytes := make([]byte, length)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, fmt.Errorf("entropy generation failed: %w", err)
	}
	return randomBytes, nil
}

func generateNonce() (string, error) {
	randomBytes, err := generateSecureRandomBytes(32) // 256 bits of entropy
	if err != nil {
		return "", fmt.Errorf("failed to generate secure nonce - %w", err)
	}
	return hex.EncodeToString(randomBytes), nil
}

// SignOutcome CBOR-encodes an outcome record and signs it as a COSE_Sign1
// message (ES256) with the session key.
func SignOutcome(km *KeyManager, rec *auctionapi.OutcomeRecord) (auctionapi.OutcomeCOSE, error) {
	if km == nil {
		return nil, fmt.Errorf("key manager is nil")
	}

	payload, err := rec.EncodeCBOR()
	if err != nil {
		return nil, fmt.Errorf("failed to encode outcome payload: %w", err)
	}

	signer, err := cose.NewSigner(cose.AlgorithmES256, km.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create COSE signer: %w", err)
	}

	msg := cose.NewSign1Message()
	msg.Headers.Protected.SetAlgorithm(cose.AlgorithmES256)
	msg.Payload = payload

	if err := msg.Sign(rand.Reader, nil, signer); err != nil {
		return nil, fmt.Errorf("COSE signing failed: %w", err)
	}

	coseBytes, err := msg.MarshalCBOR()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal COSE message: %w", err)
	}

	return auctionapi.OutcomeCOSE(coseBytes), nil
}
