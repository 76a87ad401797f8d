package tracker

import "fmt"

// Endpoint identifies one kind of upstream request. It doubles as the first
// half of the cache key.
type Endpoint string

const (
	EndpointToken        Endpoint = "token"
	EndpointHolders      Endpoint = "holders"
	EndpointWalletBasic  Endpoint = "wallet_basic"
	EndpointWalletTrades Endpoint = "wallet_trades"
	EndpointWalletPnL    Endpoint = "pnl"
	EndpointTopTraders   Endpoint = "top_traders"
	EndpointFirstBuyers  Endpoint = "first_buyers"
)

// path returns the request path for the given subject (token or wallet address).
func (e Endpoint) path(subject string) string {
	switch e {
	case EndpointToken:
		return fmt.Sprintf("/tokens/%s", subject)
	case EndpointHolders:
		return fmt.Sprintf("/tokens/%s/holders", subject)
	case EndpointWalletBasic:
		return fmt.Sprintf("/wallet/%s/basic", subject)
	case EndpointWalletTrades:
		return fmt.Sprintf("/wallet/%s/trades", subject)
	case EndpointWalletPnL:
		return fmt.Sprintf("/pnl/%s", subject)
	case EndpointTopTraders:
		return fmt.Sprintf("/top-traders/%s", subject)
	case EndpointFirstBuyers:
		return fmt.Sprintf("/first-buyers/%s", subject)
	}
	return "/" + subject
}

// cacheable reports whether successful responses may be memoized. Holder
// lists mutate too frequently to be worth caching.
func (e Endpoint) cacheable() bool {
	return e != EndpointHolders
}
