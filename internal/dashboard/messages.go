package dashboard

import (
	"errors"
	"fmt"

	"TickerBoard/internal/model"
)

// Describe turns a side-channel error into the short line shown under the
// chart. It returns "" for a nil error.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var symbol string
	var e *model.Error
	if errors.As(err, &e) {
		symbol = e.Ticker
	}
	switch model.KindOf(err) {
	case model.KindInvalidTicker:
		return fmt.Sprintf("Invalid ticker %q: use letters and digits only", symbol)
	case model.KindNoData:
		return fmt.Sprintf("No data found for %s", symbol)
	case model.KindTimeout:
		return fmt.Sprintf("Request for %s timed out, try again later", symbol)
	case model.KindNetwork:
		return fmt.Sprintf("Could not reach the data provider for %s", symbol)
	case model.KindParse:
		return fmt.Sprintf("Unexpected data from the provider for %s", symbol)
	case model.KindAssembly:
		return "Showing a simplified chart"
	default:
		return fmt.Sprintf("Error loading data: %v", err)
	}
}
