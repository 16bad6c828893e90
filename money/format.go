package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NoPrice is shown when a product has no parseable price.
const NoPrice = "—"

var arsPrinter = message.NewPrinter(language.MustParse("es-AR"))

// FormatARS renders value as whole Argentine pesos with '.' thousands
// grouping, e.g. "$ 93.001".
func FormatARS(value *float64) string {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return NoPrice
	}
	rounded := math.Round(*value)
	if rounded == 0 {
		// drops the sign of -0
		rounded = 0
	}
	return arsPrinter.Sprintf("$ %.0f", rounded)
}
