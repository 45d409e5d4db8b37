package brackets

import (
	"strings"

	"github.com/shopspring/decimal"
)

// stateRates approximates each state's income tax with a single flat rate.
// Progressive states are represented by a mid-range effective rate. This is
// a deliberate simplification inherited from the original design; the state
// layer does not do a bracket walk.
var stateRates = map[string]float64{
	"AK": 0,
	"AZ": 0.025,
	"CA": 0.093,
	"CO": 0.044,
	"CT": 0.055,
	"FL": 0,
	"GA": 0.0539,
	"IL": 0.0495,
	"IN": 0.0305,
	"MA": 0.05,
	"MD": 0.0475,
	"MI": 0.0425,
	"MN": 0.0785,
	"MO": 0.047,
	"NC": 0.045,
	"NH": 0,
	"NJ": 0.0637,
	"NV": 0,
	"NY": 0.0685,
	"OH": 0.035,
	"OK": 0.0475,
	"OR": 0.0875,
	"PA": 0.0307,
	"SD": 0,
	"TN": 0,
	"TX": 0,
	"UT": 0.0465,
	"VA": 0.0575,
	"WA": 0,
	"WI": 0.053,
	"WY": 0,
}

// StateRate returns the flat approximate rate for a two-letter state code.
// Unknown or empty codes are treated as no state income tax.
func StateRate(code string) decimal.Decimal {
	rate, ok := stateRates[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return decimal.Zero
	}
	return decimal.NewFromFloat(rate)
}

// KnownState reports whether a state code has an entry in the rate table.
func KnownState(code string) bool {
	_, ok := stateRates[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}
