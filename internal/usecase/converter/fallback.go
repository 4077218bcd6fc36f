package converter

import "github.com/shopspring/decimal"

// usdRates is the static fallback table: units of each currency per 1 USD.
// Used when the live provider fails or times out. The figures are
// deliberately approximate; rate-sourcing accuracy is out of scope.
// USDP is the app's digital-dollar ledger currency and pegs 1:1.
var usdRates = map[string]decimal.Decimal{
	"USD":  decimal.NewFromInt(1),
	"USDP": decimal.NewFromInt(1),
	"EUR":  decimal.RequireFromString("0.92"),
	"GBP":  decimal.RequireFromString("0.79"),
	"JPY":  decimal.RequireFromString("155.0"),
	"CHF":  decimal.RequireFromString("0.90"),
	"CAD":  decimal.RequireFromString("1.36"),
	"AUD":  decimal.RequireFromString("1.52"),
	"NZD":  decimal.RequireFromString("1.65"),
	"CNY":  decimal.RequireFromString("7.24"),
	"INR":  decimal.RequireFromString("83.3"),
	"SGD":  decimal.RequireFromString("1.35"),
	"HKD":  decimal.RequireFromString("7.81"),
	"MXN":  decimal.RequireFromString("17.05"),
	"BRL":  decimal.RequireFromString("5.40"),
	"SEK":  decimal.RequireFromString("10.55"),
	"NOK":  decimal.RequireFromString("10.70"),
	"DKK":  decimal.RequireFromString("6.86"),
	"PLN":  decimal.RequireFromString("3.98"),
	"AED":  decimal.RequireFromString("3.67"),
	"NGN":  decimal.RequireFromString("1450.0"),
	"ZAR":  decimal.RequireFromString("18.40"),
	"KRW":  decimal.RequireFromString("1360.0"),
}

// fallbackRate cross-rates any pair through the USD column.
// Returns false when either leg is missing from the table.
func fallbackRate(from, to string) (decimal.Decimal, bool) {
	fromUSD, ok := usdRates[from]
	if !ok {
		return decimal.Decimal{}, false
	}
	toUSD, ok := usdRates[to]
	if !ok {
		return decimal.Decimal{}, false
	}
	return toUSD.Div(fromUSD), true
}
