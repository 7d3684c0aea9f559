package domain

import "errors"

// Validation errors surfaced by the submission intake policy. Each maps to a
// distinct user-facing message; none of them leaves partial state behind.
var (
	ErrMissingCSMName      = errors.New("CSM name is required")
	ErrMissingCompanyName  = errors.New("company name is required")
	ErrNoIntegrations      = errors.New("at least one integration must be selected")
	ErrDuplicateSubmission = errors.New("a submission for this CSM and company already exists")
)
