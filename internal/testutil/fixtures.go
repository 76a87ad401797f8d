package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bimakw/wallet-radar/internal/domain/entities"
)

// Common test addresses (real base58 mainnet addresses, 32 bytes decoded)
const (
	TokenAAddress = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"
	TokenBAddress = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	TokenCAddress = "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"

	AliceAddress = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"
	BobAddress   = "5Q544fKrFoe6tsEbD7S8EmxGTJYAKtTVhAW5Q5pge4j1"
	CarolAddress = "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"
	DaveAddress  = "4Nd1mBQtrMJVYVfKf2Pjy9mekU3HsJQXvHninYkHaBzf"
)

// TestBaseTime is the reference "now" used by deterministic fixtures.
var TestBaseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// CreateTestToken creates a test token with default values
func CreateTestToken(opts ...TokenOption) entities.Token {
	created := TestBaseTime.Add(-48 * time.Hour)
	t := entities.Token{
		Address:     TokenAAddress,
		Name:        "Test Token",
		Symbol:      "TEST",
		TotalSupply: 1_000_000_000,
		Decimals:    6,
		CreatedAt:   &created,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

type TokenOption func(*entities.Token)

func TokenWithAddress(addr string) TokenOption {
	return func(t *entities.Token) {
		t.Address = addr
	}
}

func TokenWithSymbol(symbol string) TokenOption {
	return func(t *entities.Token) {
		t.Symbol = symbol
	}
}

func TokenWithSupply(supply float64) TokenOption {
	return func(t *entities.Token) {
		t.TotalSupply = supply
	}
}

func TokenWithDecimals(decimals int) TokenOption {
	return func(t *entities.Token) {
		t.Decimals = decimals
	}
}

func TokenWithCreatedAt(ts time.Time) TokenOption {
	return func(t *entities.Token) {
		t.CreatedAt = &ts
	}
}

// CreateTestHolder creates a holder entry with a raw amount scaled to the
// default 6 decimals.
func CreateTestHolder(address string, uiAmount float64, opts ...HolderOption) entities.Holder {
	h := entities.Holder{
		Address: address,
		Amount:  decimal.NewFromFloat(uiAmount).Shift(6),
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

type HolderOption func(*entities.Holder)

func HolderWithPercentage(pct float64) HolderOption {
	return func(h *entities.Holder) {
		h.Percentage = pct
	}
}

func HolderWithRawAmount(raw string) HolderOption {
	return func(h *entities.Holder) {
		h.Amount = decimal.RequireFromString(raw)
	}
}

// CreateTestTrade creates a trade record with default values
func CreateTestTrade(token, side string, at time.Time, opts ...TradeOption) entities.TradeRecord {
	t := entities.TradeRecord{
		Token:     token,
		Side:      side,
		Time:      at,
		VolumeUSD: 100,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

type TradeOption func(*entities.TradeRecord)

func TradeWithPnL(pnl float64) TradeOption {
	return func(t *entities.TradeRecord) {
		t.PnL = &pnl
	}
}

func TradeWithVolume(volume float64) TradeOption {
	return func(t *entities.TradeRecord) {
		t.VolumeUSD = volume
	}
}

// CreateTestPnLReport creates a PnL report from (realized, unrealized) pairs
func CreateTestPnLReport(positions ...[2]float64) *entities.PnLReport {
	report := &entities.PnLReport{}
	for _, p := range positions {
		report.Positions = append(report.Positions, entities.Position{
			Token:         TokenAAddress,
			RealizedPnL:   p[0],
			UnrealizedPnL: p[1],
		})
		report.TotalRealized += p[0]
		report.TotalUnrealized += p[1]
	}
	return report
}
