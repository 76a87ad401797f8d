package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/bimakw/wallet-radar/internal/domain/entities"
	"github.com/bimakw/wallet-radar/internal/domain/upstream"
)

// MockTrackerAPI is a mock implementation of upstream.API backed by in-memory
// maps, with function hooks for custom behavior and call tracking.
type MockTrackerAPI struct {
	mu sync.Mutex

	// Fixture data used by the default implementations
	Tokens      map[string]*entities.Token
	HolderLists map[string][]entities.Holder
	Portfolios  map[string]float64
	Trades      map[string][]entities.TradeRecord
	Reports     map[string]*entities.PnLReport
	Traders     map[string][]entities.TraderRecord
	Buyers      map[string][]entities.FirstBuyer

	// Function hooks for custom behavior
	TokenFunc        func(ctx context.Context, address string) (*entities.Token, error)
	HoldersFunc      func(ctx context.Context, address string) ([]entities.Holder, error)
	WalletBasicFunc  func(ctx context.Context, wallet string) (float64, error)
	WalletTradesFunc func(ctx context.Context, wallet string) ([]entities.TradeRecord, error)
	WalletPnLFunc    func(ctx context.Context, wallet string) (*entities.PnLReport, error)
	TopTradersFunc   func(ctx context.Context, address string) ([]entities.TraderRecord, error)
	FirstBuyersFunc  func(ctx context.Context, address string) ([]entities.FirstBuyer, error)

	// Call tracking
	Calls []MockCall
}

type MockCall struct {
	Method  string
	Subject string
}

var _ upstream.API = (*MockTrackerAPI)(nil)

func NewMockTrackerAPI() *MockTrackerAPI {
	return &MockTrackerAPI{
		Tokens:      make(map[string]*entities.Token),
		HolderLists: make(map[string][]entities.Holder),
		Portfolios:  make(map[string]float64),
		Trades:      make(map[string][]entities.TradeRecord),
		Reports:     make(map[string]*entities.PnLReport),
		Traders:     make(map[string][]entities.TraderRecord),
		Buyers:      make(map[string][]entities.FirstBuyer),
	}
}

func (m *MockTrackerAPI) record(method, subject string) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: method, Subject: subject})
	m.mu.Unlock()
}

// CallCount returns how many calls were recorded for the given method.
func (m *MockTrackerAPI) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (m *MockTrackerAPI) Token(ctx context.Context, address string) (*entities.Token, error) {
	m.record("Token", address)
	if m.TokenFunc != nil {
		return m.TokenFunc(ctx, address)
	}
	token, ok := m.Tokens[address]
	if !ok {
		return nil, fmt.Errorf("token %s not found", address)
	}
	copied := *token
	return &copied, nil
}

func (m *MockTrackerAPI) Holders(ctx context.Context, address string) ([]entities.Holder, error) {
	m.record("Holders", address)
	if m.HoldersFunc != nil {
		return m.HoldersFunc(ctx, address)
	}
	return m.HolderLists[address], nil
}

func (m *MockTrackerAPI) WalletBasic(ctx context.Context, wallet string) (float64, error) {
	m.record("WalletBasic", wallet)
	if m.WalletBasicFunc != nil {
		return m.WalletBasicFunc(ctx, wallet)
	}
	return m.Portfolios[wallet], nil
}

func (m *MockTrackerAPI) WalletTrades(ctx context.Context, wallet string) ([]entities.TradeRecord, error) {
	m.record("WalletTrades", wallet)
	if m.WalletTradesFunc != nil {
		return m.WalletTradesFunc(ctx, wallet)
	}
	return m.Trades[wallet], nil
}

func (m *MockTrackerAPI) WalletPnL(ctx context.Context, wallet string) (*entities.PnLReport, error) {
	m.record("WalletPnL", wallet)
	if m.WalletPnLFunc != nil {
		return m.WalletPnLFunc(ctx, wallet)
	}
	return m.Reports[wallet], nil
}

func (m *MockTrackerAPI) TopTraders(ctx context.Context, address string) ([]entities.TraderRecord, error) {
	m.record("TopTraders", address)
	if m.TopTradersFunc != nil {
		return m.TopTradersFunc(ctx, address)
	}
	return m.Traders[address], nil
}

func (m *MockTrackerAPI) FirstBuyers(ctx context.Context, address string) ([]entities.FirstBuyer, error) {
	m.record("FirstBuyers", address)
	if m.FirstBuyersFunc != nil {
		return m.FirstBuyersFunc(ctx, address)
	}
	return m.Buyers[address], nil
}
