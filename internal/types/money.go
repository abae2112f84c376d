// README: Money value object shared by budgets, fares and nightly rates.
package types

import "strconv"

const (
	CurrencyINR = "INR"
	CurrencyUSD = "USD"
)

type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func INR(amount float64) Money { return Money{Amount: amount, Currency: CurrencyINR} }

func USD(amount float64) Money { return Money{Amount: amount, Currency: CurrencyUSD} }

// Symbol returns the display prefix for the currency, falling back to the ISO code.
func (m Money) Symbol() string {
	switch m.Currency {
	case CurrencyINR:
		return "₹"
	case CurrencyUSD:
		return "$"
	default:
		return m.Currency + " "
	}
}

// String renders the amount without trailing zeros, e.g. ₹45000 or $189.5.
func (m Money) String() string {
	return m.Symbol() + FormatAmount(m.Amount)
}

func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
