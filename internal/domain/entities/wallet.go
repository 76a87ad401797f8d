package entities

import "time"

// TradeRecord is a single swap from a wallet's trade history.
type TradeRecord struct {
	Token     string    `json:"token"`
	Side      string    `json:"side"` // "buy" or "sell"
	Time      time.Time `json:"time"`
	VolumeUSD float64   `json:"volume_usd"`
	PnL       *float64  `json:"pnl,omitempty"`
}

// Position is a per-token entry of a wallet's PnL report.
type Position struct {
	Token         string  `json:"token"`
	RealizedPnL   float64 `json:"realized_pnl"`
	UnrealizedPnL float64 `json:"unrealized_pnl"`
	ROI           float64 `json:"roi"`
}

// PnLReport holds the raw profit-and-loss response for a wallet.
type PnLReport struct {
	TotalRealized   float64    `json:"total_realized"`
	TotalUnrealized float64    `json:"total_unrealized"`
	Positions       []Position `json:"positions"`
}

// Usable reports whether the report carries enough data to derive a summary.
func (r *PnLReport) Usable() bool {
	return r != nil && len(r.Positions) > 0
}

// WalletSummary aggregates a wallet's trading performance.
type WalletSummary struct {
	PortfolioValue      float64 `json:"portfolio_value"`
	TradeCount          int     `json:"trade_count"`
	WinRate             int     `json:"win_rate"` // 0-100
	RealizedPnL         float64 `json:"realized_pnl"`
	UnrealizedPnL       float64 `json:"unrealized_pnl"`
	ProfitablePositions int     `json:"profitable_positions"`
	LosingPositions     int     `json:"losing_positions"`
}

// WalletOverlap is a wallet holding at least two of the analyzed tokens.
// Score, tags, portfolio and summary are populated only for wallets inside
// the deep-analysis bound.
type WalletOverlap struct {
	Address string `json:"address"`

	// Tokens held by this wallet, sorted; always len >= 2.
	Tokens []string `json:"tokens"`

	// HoldingPct maps token address to the wallet's share of supply.
	HoldingPct map[string]float64 `json:"holding_pct"`

	PortfolioValue *float64       `json:"portfolio_value,omitempty"`
	Score          *int           `json:"score,omitempty"` // 0-10
	Tags           []string       `json:"tags,omitempty"`
	Summary        *WalletSummary `json:"summary,omitempty"`

	// TopTraderTokens lists analyzed tokens whose top-trader list contains
	// this wallet.
	TopTraderTokens []string `json:"top_trader_tokens,omitempty"`

	// DataUnavailable is set when any deep-analysis fetch for this wallet
	// failed and a safe default was substituted, so a zeroed summary can be
	// told apart from a genuinely inactive wallet.
	DataUnavailable bool `json:"data_unavailable,omitempty"`
}

// OverlapCount returns the number of analyzed tokens this wallet holds.
func (w *WalletOverlap) OverlapCount() int {
	return len(w.Tokens)
}

// ScoreValue returns the score, treating an unscored wallet as zero.
func (w *WalletOverlap) ScoreValue() int {
	if w.Score == nil {
		return 0
	}
	return *w.Score
}
