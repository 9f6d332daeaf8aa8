package validation

// OutcomeValidationResult contains the results of validating a signed
// auction outcome record against a disclosed bid log.
type OutcomeValidationResult struct {
	SignatureValid    bool
	BidHashesValid    bool
	RoundHashValid    bool
	OutcomeValid      bool
	ValidationDetails []string
}

// IsValid returns true if all outcome validation checks passed.
func (r *OutcomeValidationResult) IsValid() bool {
	return r.SignatureValid && r.BidHashesValid && r.RoundHashValid && r.OutcomeValid
}
