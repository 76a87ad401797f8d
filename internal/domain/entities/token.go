package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Token represents metadata for an analyzed token. Immutable once fetched;
// cached for the lifetime of a client instance.
type Token struct {
	Address     string     `json:"address"`
	Name        string     `json:"name"`
	Symbol      string     `json:"symbol"`
	TotalSupply float64    `json:"total_supply"`
	Decimals    int        `json:"decimals"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	HolderCount *int       `json:"holder_count,omitempty"`
}

// Holder represents a single entry of a token's top-holder list. Holder lists
// are assumed volatile and are never cached.
type Holder struct {
	Address string          `json:"address"`
	Amount  decimal.Decimal `json:"amount"`

	// Percentage of total supply. Zero when the upstream omitted it and it
	// could not be derived.
	Percentage float64 `json:"percentage"`
}
