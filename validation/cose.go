package validation

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/veraison/go-cose"

	"github.com/cloudx-io/uniquebid/auctionapi"
)

// ParsePublicKeyPEM parses a PEM-encoded ECDSA public key, the form the
// auctioneer publishes for outcome verification.
func ParsePublicKeyPEM(pemData string) (*ecdsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemData))
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in public key data")
	}

	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	ecdsaKey, ok := key.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not ECDSA")
	}

	return ecdsaKey, nil
}

// VerifyOutcomeSignature verifies the COSE_Sign1 signature over an outcome
// record and returns the verified CBOR payload.
func VerifyOutcomeSignature(coseBytes auctionapi.OutcomeCOSE, publicKey *ecdsa.PublicKey) ([]byte, error) {
	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(coseBytes); err != nil {
		return nil, fmt.Errorf("parse COSE_Sign1 message: %w", err)
	}

	verifier, err := cose.NewVerifier(cose.AlgorithmES256, publicKey)
	if err != nil {
		return nil, fmt.Errorf("create verifier: %w", err)
	}

	if err := msg.Verify(nil, verifier); err != nil {
		return nil, fmt.Errorf("COSE signature verification failed: %w", err)
	}

	return msg.Payload, nil
}

// ExtractCOSEPayload returns the payload of a COSE_Sign1 message without
// verifying its signature. Used to report record contents alongside a
// signature failure.
func ExtractCOSEPayload(coseBytes auctionapi.OutcomeCOSE) ([]byte, error) {
	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(coseBytes); err != nil {
		return nil, fmt.Errorf("parse COSE_Sign1 message: %w", err)
	}
	return msg.Payload, nil
}
