package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bimakw/wallet-radar/internal/domain/entities"
)

// holderPercentage prefers the upstream-supplied percentage; otherwise it
// derives the share from the raw amount, the token's decimal precision and
// total supply.
func holderPercentage(h entities.Holder, token entities.Token) float64 {
	if h.Percentage > 0 {
		return h.Percentage
	}
	if token.TotalSupply <= 0 {
		return 0
	}
	uiAmount := h.Amount.Shift(int32(-token.Decimals))
	pct, _ := uiAmount.
		Div(decimal.NewFromFloat(token.TotalSupply)).
		Mul(decimal.NewFromInt(100)).
		Float64()
	return pct
}

// buildOverlaps cross-references per-token holder lists into the wallet ->
// token-set index and keeps wallets holding at least two of the analyzed
// tokens. A wallet appearing multiple times in one token's list contributes
// that token once. The result is pre-sorted by overlap count descending for
// the deep-analysis bound; scores re-sort it later.
func buildOverlaps(tokens []entities.Token, holdersByToken map[string][]entities.Holder) []entities.WalletOverlap {
	byWallet := make(map[string]map[string]float64)
	for _, token := range tokens {
		for _, h := range holdersByToken[token.Address] {
			held, ok := byWallet[h.Address]
			if !ok {
				held = make(map[string]float64)
				byWallet[h.Address] = held
			}
			if _, seen := held[token.Address]; !seen {
				held[token.Address] = holderPercentage(h, token)
			}
		}
	}

	overlaps := make([]entities.WalletOverlap, 0)
	for wallet, held := range byWallet {
		if len(held) < 2 {
			continue
		}
		tokenList := make([]string, 0, len(held))
		for addr := range held {
			tokenList = append(tokenList, addr)
		}
		sort.Strings(tokenList)
		overlaps = append(overlaps, entities.WalletOverlap{
			Address:    wallet,
			Tokens:     tokenList,
			HoldingPct: held,
		})
	}

	sort.Slice(overlaps, func(i, j int) bool {
		if overlaps[i].OverlapCount() != overlaps[j].OverlapCount() {
			return overlaps[i].OverlapCount() > overlaps[j].OverlapCount()
		}
		return overlaps[i].Address < overlaps[j].Address
	})
	return overlaps
}
