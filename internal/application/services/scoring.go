package services

import (
	"math"
	"sort"
	"time"

	"github.com/bimakw/wallet-radar/internal/domain/entities"
)

// Scoring thresholds. The score is a bounded heuristic, not a probability;
// values were chosen so that overlap breadth dominates and wealth or behavior
// push a wallet over the reporting threshold.
const (
	// MaxScore is the upper bound of the threat score.
	MaxScore = 10

	overlapPoints    = 2 // per overlapping token
	overlapPointsCap = 8

	wealthBonusThreshold = 5_000.0 // USD, +2
	whaleThreshold       = 20_000.0

	topTraderBonus  = 3
	sniperBonus     = 2
	longHoldBonus   = 2
	wealthBonus     = 2
	longHoldMinimum = time.Hour

	sniperWindow         = 10 * time.Minute
	diamondHandThreshold = 24 * time.Hour
	quickFlipWindow      = 30 * time.Minute
)

// Behavioral tags.
const (
	TagWhale        = "Whale"
	TagEarlySniper  = "Early Sniper"
	TagDiamondHand  = "Diamond Hand"
	TagQuickFlipper = "Quick Flipper"
	TagTopTrader    = "Top Trader"
	TagCasualTrader = "Casual Trader"
)

// behaviorSignals are derived from a wallet's trade history restricted to the
// analyzed overlapping tokens.
type behaviorSignals struct {
	earlySniper bool
	diamondHand bool
	quickFlip   bool
	maxHolding  time.Duration
}

// deriveSignals inspects the wallet's first buy and first subsequent sell per
// overlapping token against the token's creation time and the current time.
func deriveSignals(rec *entities.WalletOverlap, trades []entities.TradeRecord, tokens map[string]entities.Token, now time.Time) behaviorSignals {
	overlap := make(map[string]bool, len(rec.Tokens))
	for _, t := range rec.Tokens {
		overlap[t] = true
	}

	firstBuy := make(map[string]time.Time)
	firstSell := make(map[string]time.Time)
	for _, tr := range trades {
		if !overlap[tr.Token] || tr.Time.IsZero() {
			continue
		}
		switch tr.Side {
		case "sell":
			if cur, ok := firstSell[tr.Token]; !ok || tr.Time.Before(cur) {
				firstSell[tr.Token] = tr.Time
			}
		default:
			// an untyped trade counts as the position opening
			if cur, ok := firstBuy[tr.Token]; !ok || tr.Time.Before(cur) {
				firstBuy[tr.Token] = tr.Time
			}
		}
	}

	var sig behaviorSignals
	for token, bought := range firstBuy {
		if meta, ok := tokens[token]; ok && meta.CreatedAt != nil {
			age := bought.Sub(*meta.CreatedAt)
			if age >= 0 && age <= sniperWindow {
				sig.earlySniper = true
			}
		}

		held := now.Sub(bought)
		if held > sig.maxHolding {
			sig.maxHolding = held
		}
		if held > diamondHandThreshold {
			sig.diamondHand = true
		}

		if sold, ok := firstSell[token]; ok {
			flip := sold.Sub(bought)
			if flip >= 0 && flip <= quickFlipWindow {
				sig.quickFlip = true
			}
		}
	}
	return sig
}

// computeScore combines overlap breadth, wealth and behavior into the bounded
// threat score. The per-token base is capped so that breadth alone cannot max
// the score, and wealth contributes exactly once regardless of tier.
func computeScore(rec *entities.WalletOverlap, portfolioUSD float64, sig behaviorSignals) int {
	score := overlapPoints * rec.OverlapCount()
	if score > overlapPointsCap {
		score = overlapPointsCap
	}
	if portfolioUSD > wealthBonusThreshold {
		score += wealthBonus
	}
	if len(rec.TopTraderTokens) > 0 {
		score += topTraderBonus
	}
	if sig.earlySniper {
		score += sniperBonus
	}
	if sig.maxHolding > longHoldMinimum {
		score += longHoldBonus
	}
	if score > MaxScore {
		score = MaxScore
	}
	if score < 0 {
		score = 0
	}
	return score
}

// deriveTags returns the sorted, deduplicated tag set. "Casual Trader" is the
// fallback only when no other tag applies.
func deriveTags(portfolioUSD float64, topTrader bool, sig behaviorSignals) []string {
	var tags []string
	if portfolioUSD > whaleThreshold {
		tags = append(tags, TagWhale)
	}
	if sig.earlySniper {
		tags = append(tags, TagEarlySniper)
	}
	if sig.diamondHand {
		tags = append(tags, TagDiamondHand)
	}
	if sig.quickFlip {
		tags = append(tags, TagQuickFlipper)
	}
	if topTrader {
		tags = append(tags, TagTopTrader)
	}
	if len(tags) == 0 {
		return []string{TagCasualTrader}
	}
	sort.Strings(tags)
	return tags
}

// buildSummary derives the wallet summary, preferring the PnL report's
// positions; falling back to per-trade PnL signs when the report is unusable;
// defaulting every field to zero when neither source yields data.
func buildSummary(portfolioUSD float64, trades []entities.TradeRecord, report *entities.PnLReport) *entities.WalletSummary {
	summary := &entities.WalletSummary{
		PortfolioValue: portfolioUSD,
		TradeCount:     len(trades),
	}

	if report.Usable() {
		var realized, unrealized float64
		for _, p := range report.Positions {
			realized += p.RealizedPnL
			unrealized += p.UnrealizedPnL
			if p.RealizedPnL+p.UnrealizedPnL > 0 {
				summary.ProfitablePositions++
			} else {
				summary.LosingPositions++
			}
		}
		summary.RealizedPnL = report.TotalRealized
		summary.UnrealizedPnL = report.TotalUnrealized
		if summary.RealizedPnL == 0 {
			summary.RealizedPnL = realized
		}
		if summary.UnrealizedPnL == 0 {
			summary.UnrealizedPnL = unrealized
		}
		summary.WinRate = roundPct(summary.ProfitablePositions, len(report.Positions))
		return summary
	}

	var wins, settled int
	var realized float64
	for _, t := range trades {
		if t.PnL == nil {
			continue
		}
		settled++
		realized += *t.PnL
		if *t.PnL > 0 {
			wins++
		}
	}
	summary.RealizedPnL = realized
	summary.ProfitablePositions = wins
	summary.LosingPositions = settled - wins
	summary.WinRate = roundPct(wins, settled)
	return summary
}

func roundPct(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}
