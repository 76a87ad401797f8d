package entities

import "time"

// WalletClass classifies how a recurring wallet was discovered.
type WalletClass string

const (
	ClassEarlyBuyer WalletClass = "early_buyer"
	ClassTopTrader  WalletClass = "top_trader"
)

// FirstBuyer is one entry of a token's first-buyers list.
type FirstBuyer struct {
	Wallet      string    `json:"wallet"`
	FirstBought time.Time `json:"first_bought"`
	InvestedUSD float64   `json:"invested_usd"`
	TotalPnL    float64   `json:"total_pnl"`
	ROI         float64   `json:"roi"`
}

// TraderRecord is one entry of a token's top-traders list.
type TraderRecord struct {
	Wallet  string  `json:"wallet"`
	PnL     float64 `json:"pnl"`
	Volume  float64 `json:"volume"`
	WinRate float64 `json:"win_rate"`
}

// RecurringEntry retains the per-token data point behind a recurring wallet,
// for drill-down.
type RecurringEntry struct {
	Token string  `json:"token"`
	PnL   float64 `json:"pnl"`
	ROI   float64 `json:"roi"`
}

// RecurringWallet is a wallet appearing in the early-buyer or top-trader list
// of at least two analyzed tokens.
type RecurringWallet struct {
	Wallet     string           `json:"wallet"`
	Class      WalletClass      `json:"class"`
	TokenCount int              `json:"token_count"` // always >= 2
	Tokens     []string         `json:"tokens"`
	TotalPnL   float64          `json:"total_pnl"`
	AvgROI     float64          `json:"avg_roi"`
	WinRate    int              `json:"win_rate"` // 0-100
	Entries    []RecurringEntry `json:"entries"`
}
