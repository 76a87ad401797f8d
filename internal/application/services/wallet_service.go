package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bimakw/wallet-radar/internal/domain/entities"
	"github.com/bimakw/wallet-radar/internal/domain/upstream"
)

// WalletService provides single-wallet and single-token lookups outside the
// full overlap pipeline.
type WalletService struct {
	api    upstream.API
	logger *zap.Logger
}

// NewWalletService creates a new wallet service
func NewWalletService(api upstream.API, logger *zap.Logger) *WalletService {
	return &WalletService{api: api, logger: logger}
}

// GetWalletPnL returns the wallet's trading summary, or nil when the upstream
// has no data for it. The PnL report is preferred; the trade history is the
// fallback source for realized PnL and win rate.
func (s *WalletService) GetWalletPnL(ctx context.Context, wallet string) (*entities.WalletSummary, error) {
	portfolio, err := s.api.WalletBasic(ctx, wallet)
	if err != nil {
		s.logger.Warn("Portfolio fetch failed, assuming zero value",
			zap.String("wallet", wallet),
			zap.Error(err),
		)
		portfolio = 0
	}

	report, reportErr := s.api.WalletPnL(ctx, wallet)
	trades, tradesErr := s.api.WalletTrades(ctx, wallet)
	if reportErr != nil && tradesErr != nil {
		return nil, fmt.Errorf("failed to get wallet pnl: %w", reportErr)
	}

	if !report.Usable() && len(trades) == 0 && portfolio == 0 {
		return nil, nil
	}
	return buildSummary(portfolio, trades, report), nil
}

// GetTopTraders returns the token's top-trader list
func (s *WalletService) GetTopTraders(ctx context.Context, token string) ([]entities.TraderRecord, error) {
	traders, err := s.api.TopTraders(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get top traders: %w", err)
	}
	return traders, nil
}

// GetFirstBuyers returns the token's first-buyers list
func (s *WalletService) GetFirstBuyers(ctx context.Context, token string) ([]entities.FirstBuyer, error) {
	buyers, err := s.api.FirstBuyers(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get first buyers: %w", err)
	}
	return buyers, nil
}
