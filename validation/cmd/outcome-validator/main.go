package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cloudx-io/uniquebid/auctionapi"
	"github.com/cloudx-io/uniquebid/validation"
)

func main() {
	// Define CLI flags
	var (
		outcomeInput   = flag.String("outcome", "", "Signed outcome (file path or inline base64 COSE)")
		bidsInput      = flag.String("bids", "", "Disclosed bid log JSON (file path or inline JSON array)")
		publicKeyInput = flag.String("public-key", "", "Auctioneer public key PEM (file path or inline PEM)")
		outputFormat   = flag.String("format", "text", "Output format: text or json")
		help           = flag.Bool("help", false, "Show usage information")
	)

	flag.Parse()

	// Show help
	if *help {
		showUsage()
		os.Exit(0)
	}

	// Check for required inputs
	if *outcomeInput == "" || *bidsInput == "" || *publicKeyInput == "" {
		showUsage()
		fmt.Fprintf(os.Stderr, "\nError: All three inputs are required (--outcome, --bids, --public-key)\n")
		os.Exit(2)
	}

	// Read inputs
	outcomeB64, err := readInput(*outcomeInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading signed outcome: %v\n", err)
		os.Exit(2)
	}

	bidsJSON, err := readInput(*bidsInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading bid log: %v\n", err)
		os.Exit(2)
	}

	publicKeyPEM, err := readInput(*publicKeyInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading public key: %v\n", err)
		os.Exit(2)
	}

	var bids []auctionapi.BidRecord
	if err := json.Unmarshal(bidsJSON, &bids); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing bid log: %v\n", err)
		os.Exit(2)
	}

	// Validate using library
	result, err := validation.ValidateOutcome(&validation.OutcomeValidationInput{
		OutcomeCOSEBase64: auctionapi.OutcomeCOSEBase64(strings.TrimSpace(string(outcomeB64))),
		PublicKeyPEM:      string(publicKeyPEM),
		Bids:              bids,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation error: %v\n", err)
		os.Exit(2)
	}

	// Output results
	if *outputFormat == "json" {
		outputJSON(result)
	} else {
		outputText(result)
	}

	// Exit with appropriate code
	if !result.IsValid() {
		os.Exit(1)
	}
	os.Exit(0)
}

func showUsage() {
	fmt.Println("Auction Outcome Validator")
	fmt.Println()
	fmt.Println("Validates signed unique-highest-bid auction outcomes against a disclosed bid log.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  outcome-validator --outcome <base64> --bids <json> --public-key <pem> [options]")
	fmt.Println()
	fmt.Println("Required Flags:")
	fmt.Println("  --outcome <base64>                Signed outcome record (COSE_Sign1, base64)")
	fmt.Println("  --bids <json>                     Disclosed bids in placement order")
	fmt.Println("  --public-key <pem>                Auctioneer's ECDSA public key")
	fmt.Println()
	fmt.Println("Optional Flags:")
	fmt.Println("  --format <text|json>              Output format (default: text)")
	fmt.Println("  --help                            Show this help message")
	fmt.Println()
	fmt.Println("Input Format:")
	fmt.Println("  Each flag accepts either a file path or an inline value.")
	fmt.Println()
	fmt.Println("Bid Log:")
	fmt.Println("  [")
	fmt.Println("    {\"bidder\": \"Bidder1\", \"amount\": 15},")
	fmt.Println("    {\"bidder\": \"Bidder2\", \"amount\": 20},")
	fmt.Println("    {\"bidder\": \"Bidder3\", \"amount\": 20}")
	fmt.Println("  ]")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Using files")
	fmt.Println("  outcome-validator \\")
	fmt.Println("    --outcome outcome.b64 \\")
	fmt.Println("    --bids bids.json \\")
	fmt.Println("    --public-key auctioneer.pem")
	fmt.Println()
	fmt.Println("  # Using inline values")
	fmt.Println("  outcome-validator \\")
	fmt.Println("    --outcome 'hEOhASZB...' \\")
	fmt.Println("    --bids '[{\"bidder\":\"Bidder1\",\"amount\":15}]' \\")
	fmt.Println("    --public-key auctioneer.pem")
	fmt.Println()
	fmt.Println("Exit Codes:")
	fmt.Println("  0 - Validation passed")
	fmt.Println("  1 - Validation failed")
	fmt.Println("  2 - Invalid input or runtime error")
}

func readInput(input string) ([]byte, error) {
	// Try reading as file first
	if data, err := os.ReadFile(input); err == nil {
		return data, nil
	}
	// Treat as inline value
	return []byte(input), nil
}

func outputText(result *validation.OutcomeValidationResult) {
	fmt.Println("Outcome Validation Results")
	fmt.Println("==========================")
	fmt.Printf("Signature valid:  %v\n", result.SignatureValid)
	fmt.Printf("Bid hashes valid: %v\n", result.BidHashesValid)
	fmt.Printf("Round hash valid: %v\n", result.RoundHashValid)
	fmt.Printf("Outcome valid:    %v\n", result.OutcomeValid)
	fmt.Println()
	if result.IsValid() {
		fmt.Println("Overall: VALID")
	} else {
		fmt.Println("Overall: INVALID")
	}
	if len(result.ValidationDetails) > 0 {
		fmt.Println()
		fmt.Println("Details:")
		for _, detail := range result.ValidationDetails {
			fmt.Printf("  - %s\n", detail)
		}
	}
}

func outputJSON(result *validation.OutcomeValidationResult) {
	out := map[string]any{
		"signature_valid":    result.SignatureValid,
		"bid_hashes_valid":   result.BidHashesValid,
		"round_hash_valid":   result.RoundHashValid,
		"outcome_valid":      result.OutcomeValid,
		"valid":              result.IsValid(),
		"validation_details": result.ValidationDetails,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
		os.Exit(2)
	}
	fmt.Println(string(data))
}
