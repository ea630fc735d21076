package parse

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"marketscraper/internal/apperror"
)

// LocaleNumber parses numeric text in Indonesian convention, where "." is
// the thousands separator and "," the decimal separator ("1.000,50" means
// 1000.50). The input format is fixed; there is no locale detection.
func LocaleNumber(text string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(text, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, apperror.Wrap(apperror.Format, fmt.Sprintf("parse number %q", text), err)
	}
	return d, nil
}
