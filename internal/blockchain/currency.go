package blockchain

import "github.com/chainsearch/chainsearch/internal/apperr"

// Currency identifies which upstream API and transform serve a request.
type Currency string

const (
	BTC Currency = "btc"
	ETH Currency = "eth"
	BCH Currency = "bch"
)

// Currencies lists the supported codes in a stable order.
func Currencies() []Currency {
	return []Currency{BTC, ETH, BCH}
}

// ParseCurrency accepts only the exact lowercase codes.
func ParseCurrency(code string) (Currency, error) {
	switch c := Currency(code); c {
	case BTC, ETH, BCH:
		return c, nil
	default:
		return "", unsupported(code)
	}
}

func (c Currency) String() string {
	return string(c)
}

func unsupported(code string) error {
	return apperr.New(apperr.ErrUnsupportedCurrency, "Cryptocurrency '%s' is not supported", code)
}
