package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/doctrack/internal/common"
)

// unavailable marks a collaborator failure. The cause stays in the chain.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrorUnavailable, op, err)
}

// storeErr passes a repository miss through as common.ErrorNotFound and
// treats everything else as unavailable.
func storeErr(op string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return unavailable(op, err)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, fmt.Sprintf(format, args...))
}
