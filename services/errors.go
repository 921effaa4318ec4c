package services

import "errors"

var (
	// ErrValidation marks bad or missing caller input. No side effects have
	// occurred when it is returned.
	ErrValidation = errors.New("missing required fields")

	// ErrAliasNotFound marks a lookup for an alias no registrant owns.
	ErrAliasNotFound = errors.New("alias not found")
)
