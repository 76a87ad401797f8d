package entities

import "time"

// AnalysisResult is the outcome of a full token-overlap scan.
//
// Wallets are sorted by score descending, ties broken by overlap count
// descending. Every token address referenced by a WalletOverlap is present as
// a key in TokenIndex.
type AnalysisResult struct {
	Wallets     []WalletOverlap  `json:"wallets"`
	Tokens      []Token          `json:"tokens"`
	TokenIndex  map[string]Token `json:"token_index"`
	CompletedAt time.Time        `json:"completed_at"`
}
