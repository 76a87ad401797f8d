package upstream

import (
	"context"

	"github.com/bimakw/wallet-radar/internal/domain/entities"
)

// API is the data-source contract the analysis services depend on. The
// tracker client is the production implementation; tests substitute a mock.
type API interface {
	// Token fetches token metadata.
	Token(ctx context.Context, address string) (*entities.Token, error)

	// Holders fetches the token's top-holder list.
	Holders(ctx context.Context, address string) ([]entities.Holder, error)

	// WalletBasic fetches the wallet's total portfolio value in USD.
	WalletBasic(ctx context.Context, wallet string) (float64, error)

	// WalletTrades fetches the wallet's trade history.
	WalletTrades(ctx context.Context, wallet string) ([]entities.TradeRecord, error)

	// WalletPnL fetches the wallet's realized/unrealized PnL report.
	// A nil report with nil error means the upstream had no usable data.
	WalletPnL(ctx context.Context, wallet string) (*entities.PnLReport, error)

	// TopTraders fetches the token's top-trader list.
	TopTraders(ctx context.Context, address string) ([]entities.TraderRecord, error)

	// FirstBuyers fetches the token's first-buyers list.
	FirstBuyers(ctx context.Context, address string) ([]entities.FirstBuyer, error)
}
