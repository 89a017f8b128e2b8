package usecases

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	domainerrors "lend-circle.backend/internal/domain/errors"
)

// parsePositiveAmount parses a decimal amount string and rejects
// malformed or non-positive values with a validation error.
func parsePositiveAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: malformed amount %q", domainerrors.ErrValidation, s)
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive", domainerrors.ErrValidation)
	}
	return d, nil
}
