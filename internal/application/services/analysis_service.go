package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/bimakw/wallet-radar/internal/config"
	"github.com/bimakw/wallet-radar/internal/domain/entities"
	"github.com/bimakw/wallet-radar/internal/domain/upstream"
)

// AnalysisService drives the full token-overlap pipeline: per-token metadata,
// holder and top-trader fetches, the cross-reference pass, and the bounded
// deep-analysis pass over the highest-ranked overlap candidates.
type AnalysisService struct {
	api    upstream.API
	cfg    config.AnalysisConfig
	logger *zap.Logger

	now   func() time.Time
	sleep func(time.Duration)
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(api upstream.API, cfg config.AnalysisConfig, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		api:    api,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// AnalyzeTokens runs the overlap scan over the given token addresses.
//
// Per-token failures degrade the result instead of aborting it: a token whose
// metadata fetch fails is skipped entirely, a failed holder fetch contributes
// zero overlap, and a failed deep fetch substitutes safe defaults on that one
// wallet. An error is returned only when no token could be processed at all.
func (s *AnalysisService) AnalyzeTokens(ctx context.Context, tokenAddrs []string) (*entities.AnalysisResult, error) {
	if len(tokenAddrs) < 2 {
		return nil, fmt.Errorf("at least two tokens are required, got %d", len(tokenAddrs))
	}

	tokens := make([]entities.Token, 0, len(tokenAddrs))
	index := make(map[string]entities.Token, len(tokenAddrs))
	holdersByToken := make(map[string][]entities.Holder, len(tokenAddrs))
	topTraderTokens := make(map[string][]string)

	for _, addr := range tokenAddrs {
		if _, done := index[addr]; done {
			continue
		}

		meta, err := s.api.Token(ctx, addr)
		if err != nil {
			s.logger.Warn("Skipping token, metadata fetch failed",
				zap.String("token", addr),
				zap.Error(err),
			)
			continue
		}

		holdersByToken[addr] = s.fetchHolders(ctx, addr)

		traders, err := s.api.TopTraders(ctx, addr)
		if err != nil {
			s.logger.Warn("Top-trader fetch failed, continuing without matches",
				zap.String("token", addr),
				zap.Error(err),
			)
		}
		for _, t := range traders {
			topTraderTokens[t.Wallet] = append(topTraderTokens[t.Wallet], addr)
		}

		tokens = append(tokens, *meta)
		index[addr] = *meta
	}

	if len(tokens) == 0 {
		return nil, fmt.Errorf("analysis failed: none of the %d tokens could be fetched", len(tokenAddrs))
	}

	overlaps := buildOverlaps(tokens, holdersByToken)
	for i := range overlaps {
		if matches := topTraderTokens[overlaps[i].Address]; len(matches) > 0 {
			sorted := append([]string(nil), matches...)
			sort.Strings(sorted)
			overlaps[i].TopTraderTokens = sorted
		}
	}

	limit := s.cfg.DeepLimit
	if limit <= 0 || limit > len(overlaps) {
		limit = len(overlaps)
	}
	now := s.now()
	for i := 0; i < limit; i++ {
		s.profile(ctx, &overlaps[i], index, now)
	}

	sort.SliceStable(overlaps, func(i, j int) bool {
		if overlaps[i].ScoreValue() != overlaps[j].ScoreValue() {
			return overlaps[i].ScoreValue() > overlaps[j].ScoreValue()
		}
		if overlaps[i].OverlapCount() != overlaps[j].OverlapCount() {
			return overlaps[i].OverlapCount() > overlaps[j].OverlapCount()
		}
		return overlaps[i].Address < overlaps[j].Address
	})

	s.logger.Info("Analysis complete",
		zap.Int("tokens", len(tokens)),
		zap.Int("overlaps", len(overlaps)),
		zap.Int("profiled", limit),
	)

	return &entities.AnalysisResult{
		Wallets:     overlaps,
		Tokens:      tokens,
		TokenIndex:  index,
		CompletedAt: s.now(),
	}, nil
}

// fetchHolders degrades a failed fetch to an empty list. A first empty result
// is retried exactly once after a fixed delay; fresh tokens have been observed
// to return an empty list once and a populated one right after.
func (s *AnalysisService) fetchHolders(ctx context.Context, addr string) []entities.Holder {
	holders, err := s.api.Holders(ctx, addr)
	if err != nil {
		s.logger.Warn("Holder fetch failed, token contributes no overlap",
			zap.String("token", addr),
			zap.Error(err),
		)
		return nil
	}
	if len(holders) > 0 {
		return holders
	}

	s.sleep(s.cfg.HolderRetryDelay)
	holders, err = s.api.Holders(ctx, addr)
	if err != nil {
		s.logger.Warn("Holder retry failed, token contributes no overlap",
			zap.String("token", addr),
			zap.Error(err),
		)
		return nil
	}
	return holders
}

// profile runs the deep-analysis fetches for one overlap candidate. Each
// fetch is independently fault-tolerant: a failure substitutes a safe default
// and marks the record, never aborting the batch.
func (s *AnalysisService) profile(ctx context.Context, rec *entities.WalletOverlap, index map[string]entities.Token, now time.Time) {
	portfolio, err := s.api.WalletBasic(ctx, rec.Address)
	if err != nil {
		s.logger.Warn("Portfolio fetch failed, assuming zero value",
			zap.String("wallet", rec.Address),
			zap.Error(err),
		)
		portfolio = 0
		rec.DataUnavailable = true
	}

	trades, err := s.api.WalletTrades(ctx, rec.Address)
	if err != nil {
		s.logger.Warn("Trade history fetch failed, assuming no trades",
			zap.String("wallet", rec.Address),
			zap.Error(err),
		)
		trades = nil
		rec.DataUnavailable = true
	}

	report, err := s.api.WalletPnL(ctx, rec.Address)
	if err != nil {
		s.logger.Warn("PnL fetch failed, falling back to trade history",
			zap.String("wallet", rec.Address),
			zap.Error(err),
		)
		report = nil
		rec.DataUnavailable = true
	}

	sig := deriveSignals(rec, trades, index, now)
	score := computeScore(rec, portfolio, sig)

	rec.PortfolioValue = &portfolio
	rec.Score = &score
	rec.Tags = deriveTags(portfolio, len(rec.TopTraderTokens) > 0, sig)
	rec.Summary = buildSummary(portfolio, trades, report)
}
