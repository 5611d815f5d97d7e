// Package ticker holds syntactic ticker checks and the static symbol list
// offered by the dashboard.
package ticker

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// available lists the market indices and large caps offered for selection.
// It is not used to reject other symbols.
var available = []string{
	"VNINDEX", "VN30", "HNX", "HNX30",
	"TCB", "VCB", "BID", "CTG", "MBB", "STB",
	"FPT", "VNM", "VIC", "VHM", "HPG", "MSN",
	"SAB", "BVH", "GAS", "PLX", "POW", "SHB",
}

// Normalize trims surrounding whitespace and upper-cases raw.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// IsValid reports whether raw, once normalized, is a non-empty run of ASCII
// letters and digits. It does not check that the provider knows the symbol.
func IsValid(raw string) bool {
	return validate.Var(Normalize(raw), "required,alphanum") == nil
}

// Available returns a copy of the known symbol list.
func Available() []string {
	out := make([]string, len(available))
	copy(out, available)
	return out
}
