package tracker

import (
	"testing"
	"time"
)

func TestDecodeToken_FlatShape(t *testing.T) {
	raw := []byte(`{"name":"Bonk","symbol":"BONK","totalSupply":1000000,"decimals":5,"holders":42,"createdAt":1717243200}`)
	token := decodeToken(raw)

	if token.Name != "Bonk" || token.Symbol != "BONK" {
		t.Errorf("unexpected identity: %+v", token)
	}
	if token.TotalSupply != 1000000 {
		t.Errorf("expected supply 1000000, got %f", token.TotalSupply)
	}
	if token.Decimals != 5 {
		t.Errorf("expected 5 decimals, got %d", token.Decimals)
	}
	if token.HolderCount == nil || *token.HolderCount != 42 {
		t.Errorf("expected holder count 42, got %v", token.HolderCount)
	}
	if token.CreatedAt == nil || !token.CreatedAt.Equal(time.Unix(1717243200, 0)) {
		t.Errorf("unexpected createdAt: %v", token.CreatedAt)
	}
}

func TestDecodeToken_Envelope(t *testing.T) {
	raw := []byte(`{"token":{"name":"USD Coin","symbol":"USDC","supply":"500","decimals":"6","deployedAt":"2025-06-01T12:00:00Z"}}`)
	token := decodeToken(raw)

	if token.Symbol != "USDC" {
		t.Errorf("expected symbol USDC, got %s", token.Symbol)
	}
	if token.TotalSupply != 500 {
		t.Errorf("expected supply 500 from string field, got %f", token.TotalSupply)
	}
	if token.Decimals != 6 {
		t.Errorf("expected 6 decimals from string field, got %d", token.Decimals)
	}
	if token.CreatedAt == nil || token.CreatedAt.UTC().Hour() != 12 {
		t.Errorf("unexpected deployedAt: %v", token.CreatedAt)
	}
}

func TestDecodeToken_MillisecondTimestamp(t *testing.T) {
	raw := []byte(`{"name":"X","symbol":"X","creation_time":1717243200000}`)
	token := decodeToken(raw)
	if token.CreatedAt == nil || !token.CreatedAt.Equal(time.Unix(1717243200, 0)) {
		t.Errorf("expected millisecond timestamp to decode, got %v", token.CreatedAt)
	}
}

func TestDecodeToken_Garbage(t *testing.T) {
	token := decodeToken([]byte(`not json`))
	if token == nil {
		t.Fatal("expected zero-value token, got nil")
	}
	if token.Name != "" || token.TotalSupply != 0 || token.CreatedAt != nil {
		t.Errorf("expected zero values, got %+v", token)
	}
}

func TestDecodeHolders_Shapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"bare array", `[{"address":"W1","amount":"100"},{"wallet":"W2","balance":200}]`},
		{"accounts envelope", `{"accounts":[{"address":"W1","amount":100},{"owner":"W2","amount":"200"}]}`},
		{"holders envelope", `{"holders":[{"address":"W1","amount":100},{"address":"W2","amount":200}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			holders := decodeHolders([]byte(tc.raw))
			if len(holders) != 2 {
				t.Fatalf("expected 2 holders, got %d", len(holders))
			}
			if holders[0].Address != "W1" || holders[1].Address != "W2" {
				t.Errorf("unexpected identities: %+v", holders)
			}
			if holders[0].Amount.String() != "100" || holders[1].Amount.String() != "200" {
				t.Errorf("unexpected amounts: %s, %s", holders[0].Amount, holders[1].Amount)
			}
		})
	}
}

func TestDecodeHolders_SkipsAnonymousEntries(t *testing.T) {
	holders := decodeHolders([]byte(`[{"amount":100},{"address":"W1","amount":50}]`))
	if len(holders) != 1 || holders[0].Address != "W1" {
		t.Errorf("expected anonymous entry skipped, got %+v", holders)
	}
}

func TestDecodeHolders_Percentage(t *testing.T) {
	holders := decodeHolders([]byte(`[{"address":"W1","amount":100,"percentage":3.5}]`))
	if len(holders) != 1 || holders[0].Percentage != 3.5 {
		t.Errorf("expected percentage 3.5, got %+v", holders)
	}
}

func TestDecodeTrades_FieldVariants(t *testing.T) {
	raw := []byte(`{"trades":[
		{"token":"T1","side":"buy","time":1717243200,"volumeUsd":150.5,"pnl":12},
		{"mint":"T2","type":"sell","timestamp":"1717243260","volume":"75"}
	]}`)

	trades := decodeTrades(raw)
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}

	first := trades[0]
	if first.Token != "T1" || first.Side != "buy" || first.VolumeUSD != 150.5 {
		t.Errorf("unexpected first trade: %+v", first)
	}
	if first.PnL == nil || *first.PnL != 12 {
		t.Errorf("expected pnl 12, got %v", first.PnL)
	}

	second := trades[1]
	if second.Token != "T2" || second.Side != "sell" || second.VolumeUSD != 75 {
		t.Errorf("unexpected second trade: %+v", second)
	}
	if second.PnL != nil {
		t.Errorf("expected nil pnl when absent, got %v", second.PnL)
	}
	if !second.Time.After(first.Time) {
		t.Errorf("expected timestamps decoded in order: %v vs %v", first.Time, second.Time)
	}
}

func TestDecodeTraders_IdentityVariants(t *testing.T) {
	raw := []byte(`[
		{"wallet":"W1","total":5000,"winPercentage":80},
		{"owner":"W2","pnl":"2500","winRate":60},
		{"address":"W3","realized":100},
		{"volume":10}
	]`)

	traders := decodeTraders(raw)
	if len(traders) != 3 {
		t.Fatalf("expected 3 traders (anonymous skipped), got %d", len(traders))
	}
	if traders[0].Wallet != "W1" || traders[0].PnL != 5000 || traders[0].WinRate != 80 {
		t.Errorf("unexpected first trader: %+v", traders[0])
	}
	if traders[1].Wallet != "W2" || traders[1].PnL != 2500 || traders[1].WinRate != 60 {
		t.Errorf("unexpected second trader: %+v", traders[1])
	}
	if traders[2].Wallet != "W3" || traders[2].PnL != 100 {
		t.Errorf("unexpected third trader: %+v", traders[2])
	}
}

func TestDecodePnL_PositionsArray(t *testing.T) {
	raw := []byte(`{"realized":100,"unrealized":-20,"positions":[{"token":"T1","realizedPnl":60,"unrealizedPnl":-20},{"token":"T2","realized":40}]}`)
	report := decodePnL(raw)

	if report == nil {
		t.Fatal("expected report, got nil")
	}
	if report.TotalRealized != 100 || report.TotalUnrealized != -20 {
		t.Errorf("unexpected totals: %+v", report)
	}
	if len(report.Positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(report.Positions))
	}
	if report.Positions[0].RealizedPnL != 60 || report.Positions[1].RealizedPnL != 40 {
		t.Errorf("unexpected positions: %+v", report.Positions)
	}
}

func TestDecodePnL_PositionsMap(t *testing.T) {
	raw := []byte(`{"totalRealized":10,"tokens":{"T1":{"realized":10,"roi":0.5}}}`)
	report := decodePnL(raw)

	if report == nil {
		t.Fatal("expected report, got nil")
	}
	if len(report.Positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(report.Positions))
	}
	pos := report.Positions[0]
	if pos.Token != "T1" || pos.RealizedPnL != 10 || pos.ROI != 0.5 {
		t.Errorf("unexpected position: %+v", pos)
	}
}

func TestDecodePnL_NoData(t *testing.T) {
	if report := decodePnL([]byte(`null`)); report != nil {
		t.Errorf("expected nil for null body, got %+v", report)
	}
	if report := decodePnL([]byte(`garbage`)); report != nil {
		t.Errorf("expected nil for garbage body, got %+v", report)
	}
}

func TestDecodeFirstBuyers(t *testing.T) {
	raw := []byte(`[
		{"wallet":"W1","first_buy_time":1717243200,"totalInvested":500,"total":1200,"roi":1.4},
		{"owner":"W2","firstBought":"2025-06-01T12:05:00Z","totalPnl":-50}
	]`)

	buyers := decodeFirstBuyers(raw)
	if len(buyers) != 2 {
		t.Fatalf("expected 2 buyers, got %d", len(buyers))
	}
	if buyers[0].Wallet != "W1" || buyers[0].InvestedUSD != 500 || buyers[0].TotalPnL != 1200 {
		t.Errorf("unexpected first buyer: %+v", buyers[0])
	}
	if buyers[1].Wallet != "W2" || buyers[1].TotalPnL != -50 {
		t.Errorf("unexpected second buyer: %+v", buyers[1])
	}
	if !buyers[1].FirstBought.After(buyers[0].FirstBought) {
		t.Errorf("expected buy times in order: %v vs %v", buyers[0].FirstBought, buyers[1].FirstBought)
	}
}

func TestDecodeWalletBasic(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{`{"value":1234.5}`, 1234.5},
		{`{"totalValue":"9000"}`, 9000},
		{`{"total":42}`, 42},
		{`{}`, 0},
		{`garbage`, 0},
	}
	for _, tc := range cases {
		if got := decodeWalletBasic([]byte(tc.raw)); got != tc.want {
			t.Errorf("decodeWalletBasic(%s) = %f, want %f", tc.raw, got, tc.want)
		}
	}
}
