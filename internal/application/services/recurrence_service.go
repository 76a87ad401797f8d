package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/bimakw/wallet-radar/internal/domain/entities"
	"github.com/bimakw/wallet-radar/internal/domain/upstream"
)

// RecurrenceService runs the secondary cross-token scan: wallets appearing in
// the early-buyer or top-trader lists of at least two tokens.
type RecurrenceService struct {
	api    upstream.API
	logger *zap.Logger
}

// NewRecurrenceService creates a new recurrence service
func NewRecurrenceService(api upstream.API, logger *zap.Logger) *RecurrenceService {
	return &RecurrenceService{api: api, logger: logger}
}

type recurrenceAcc struct {
	tokens  []string
	seen    map[string]bool
	entries []entities.RecurringEntry
	pnl     float64
	roiSum  float64
	wins    int
}

func (a *recurrenceAcc) add(token string, entry entities.RecurringEntry) {
	if a.seen[token] {
		return
	}
	a.seen[token] = true
	a.tokens = append(a.tokens, token)
	a.entries = append(a.entries, entry)
	a.pnl += entry.PnL
	a.roiSum += entry.ROI
	if entry.PnL > 0 {
		a.wins++
	}
}

// ScanRecurring fetches first buyers and top traders for every token and
// folds wallets that recur across at least two tokens of the same class.
// Per-token fetch failures are logged and skipped; an error is returned only
// when no token yielded any data.
func (s *RecurrenceService) ScanRecurring(ctx context.Context, tokens []string) ([]entities.RecurringWallet, error) {
	if len(tokens) < 2 {
		return nil, fmt.Errorf("at least two tokens are required, got %d", len(tokens))
	}

	byClass := map[entities.WalletClass]map[string]*recurrenceAcc{
		entities.ClassEarlyBuyer: {},
		entities.ClassTopTrader:  {},
	}
	fold := func(class entities.WalletClass, wallet, token string, entry entities.RecurringEntry) {
		acc, ok := byClass[class][wallet]
		if !ok {
			acc = &recurrenceAcc{seen: make(map[string]bool)}
			byClass[class][wallet] = acc
		}
		acc.add(token, entry)
	}

	succeeded := 0
	for _, token := range tokens {
		ok := false

		buyers, err := s.api.FirstBuyers(ctx, token)
		if err != nil {
			s.logger.Warn("First-buyers fetch failed, skipping token for this class",
				zap.String("token", token),
				zap.Error(err),
			)
		} else {
			ok = true
			for _, b := range buyers {
				fold(entities.ClassEarlyBuyer, b.Wallet, token, entities.RecurringEntry{
					Token: token,
					PnL:   b.TotalPnL,
					ROI:   b.ROI,
				})
			}
		}

		traders, err := s.api.TopTraders(ctx, token)
		if err != nil {
			s.logger.Warn("Top-traders fetch failed, skipping token for this class",
				zap.String("token", token),
				zap.Error(err),
			)
		} else {
			ok = true
			for _, t := range traders {
				fold(entities.ClassTopTrader, t.Wallet, token, entities.RecurringEntry{
					Token: token,
					PnL:   t.PnL,
					ROI:   t.WinRate,
				})
			}
		}

		if ok {
			succeeded++
		}
	}

	if succeeded == 0 {
		return nil, fmt.Errorf("recurrence scan failed: none of the %d tokens could be fetched", len(tokens))
	}

	var out []entities.RecurringWallet
	for class, wallets := range byClass {
		for wallet, acc := range wallets {
			if len(acc.tokens) < 2 {
				continue
			}
			sort.Strings(acc.tokens)
			out = append(out, entities.RecurringWallet{
				Wallet:     wallet,
				Class:      class,
				TokenCount: len(acc.tokens),
				Tokens:     acc.tokens,
				TotalPnL:   acc.pnl,
				AvgROI:     acc.roiSum / float64(len(acc.entries)),
				WinRate:    roundPct(acc.wins, len(acc.entries)),
				Entries:    acc.entries,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TokenCount != out[j].TokenCount {
			return out[i].TokenCount > out[j].TokenCount
		}
		if out[i].TotalPnL != out[j].TotalPnL {
			return out[i].TotalPnL > out[j].TotalPnL
		}
		return out[i].Wallet < out[j].Wallet
	})
	return out, nil
}
