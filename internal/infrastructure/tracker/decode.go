package tracker

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bimakw/wallet-radar/internal/domain/entities"
)

// The upstream API is not consistent about response shapes: lists arrive bare
// or wrapped in differently named envelopes, identity fields vary, and numbers
// arrive as JSON numbers or strings. Each decoder below applies an ordered
// list of extraction rules and falls through to empty/zero values rather than
// erroring on an unexpected shape.

// flexFloat accepts a JSON number, a numeric string, or null.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	*f = 0
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*f = flexFloat(v)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		*f = flexFloat(v)
	}
	return nil
}

// flexInt accepts a JSON number, a numeric string, or null.
type flexInt int

func (i *flexInt) UnmarshalJSON(b []byte) error {
	var f flexFloat
	_ = f.UnmarshalJSON(b)
	*i = flexInt(f)
	return nil
}

// flexDecimal accepts a JSON number or a numeric string without failing the
// surrounding document on garbage.
type flexDecimal struct {
	decimal.Decimal
}

func (d *flexDecimal) UnmarshalJSON(b []byte) error {
	d.Decimal = decimal.Zero
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
	}
	if v, err := decimal.NewFromString(s); err == nil {
		d.Decimal = v
	}
	return nil
}

// flexTime accepts unix seconds, unix milliseconds, numeric strings of either,
// or an RFC 3339 string.
type flexTime struct {
	t time.Time
}

func (ft *flexTime) UnmarshalJSON(b []byte) error {
	ft.t = time.Time{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		if parsed, err := time.Parse(time.RFC3339, s); err == nil {
			ft.t = parsed
			return nil
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			ft.t = fromUnix(v)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		ft.t = fromUnix(v)
	}
	return nil
}

// fromUnix treats values above 1e11 as milliseconds, everything else as seconds.
func fromUnix(v float64) time.Time {
	if v <= 0 {
		return time.Time{}
	}
	if v > 1e11 {
		return time.UnixMilli(int64(v)).UTC()
	}
	return time.Unix(int64(v), 0).UTC()
}

func timePtr(candidates ...*flexTime) *time.Time {
	for _, c := range candidates {
		if c != nil && !c.t.IsZero() {
			t := c.t
			return &t
		}
	}
	return nil
}

type tokenBody struct {
	Name         string    `json:"name"`
	Symbol       string    `json:"symbol"`
	TotalSupply  flexFloat `json:"totalSupply"`
	Supply       flexFloat `json:"supply"`
	Decimals     flexInt   `json:"decimals"`
	CreatedAt    *flexTime `json:"createdAt"`
	CreationTime *flexTime `json:"creation_time"`
	DeployedAt   *flexTime `json:"deployedAt"`
	Holders      *flexInt  `json:"holders"`
	HolderCount  *flexInt  `json:"holderCount"`
}

// decodeToken handles both the flat shape and the {token: {...}} envelope.
func decodeToken(raw []byte) *entities.Token {
	var wire struct {
		tokenBody
		Token *tokenBody `json:"token"`
	}
	_ = json.Unmarshal(raw, &wire)

	body := wire.tokenBody
	if wire.Token != nil {
		body = *wire.Token
	}

	supply := float64(body.TotalSupply)
	if supply == 0 {
		supply = float64(body.Supply)
	}

	var holderCount *int
	for _, c := range []*flexInt{body.HolderCount, body.Holders} {
		if c != nil && *c > 0 {
			n := int(*c)
			holderCount = &n
			break
		}
	}

	return &entities.Token{
		Name:        body.Name,
		Symbol:      body.Symbol,
		TotalSupply: supply,
		Decimals:    int(body.Decimals),
		CreatedAt:   timePtr(body.CreatedAt, body.CreationTime, body.DeployedAt),
		HolderCount: holderCount,
	}
}

type holderWire struct {
	Address    string      `json:"address"`
	Wallet     string      `json:"wallet"`
	Owner      string      `json:"owner"`
	Amount     flexDecimal `json:"amount"`
	Balance    flexDecimal `json:"balance"`
	Percentage flexFloat   `json:"percentage"`
}

func (h *holderWire) identity() string {
	for _, s := range []string{h.Address, h.Wallet, h.Owner} {
		if s != "" {
			return s
		}
	}
	return ""
}

// decodeHolders handles a bare array, an {accounts: [...]} envelope, or a
// {holders: [...]} envelope, in that order.
func decodeHolders(raw []byte) []entities.Holder {
	var arr []holderWire
	if err := json.Unmarshal(raw, &arr); err != nil {
		var env struct {
			Accounts []holderWire `json:"accounts"`
			Holders  []holderWire `json:"holders"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil
		}
		arr = env.Accounts
		if len(arr) == 0 {
			arr = env.Holders
		}
	}

	out := make([]entities.Holder, 0, len(arr))
	for _, h := range arr {
		addr := h.identity()
		if addr == "" {
			continue
		}
		amount := h.Amount.Decimal
		if amount.IsZero() {
			amount = h.Balance.Decimal
		}
		out = append(out, entities.Holder{
			Address:    addr,
			Amount:     amount,
			Percentage: float64(h.Percentage),
		})
	}
	return out
}

type tradeWire struct {
	Token        string     `json:"token"`
	Mint         string     `json:"mint"`
	TokenAddress string     `json:"tokenAddress"`
	Type         string     `json:"type"`
	Side         string     `json:"side"`
	Time         *flexTime  `json:"time"`
	Timestamp    *flexTime  `json:"timestamp"`
	Volume       flexFloat  `json:"volume"`
	VolumeUSD    flexFloat  `json:"volumeUsd"`
	PnL          *flexFloat `json:"pnl"`
}

// decodeTrades handles a bare array or a {trades: [...]} envelope.
func decodeTrades(raw []byte) []entities.TradeRecord {
	var arr []tradeWire
	if err := json.Unmarshal(raw, &arr); err != nil {
		var env struct {
			Trades []tradeWire `json:"trades"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil
		}
		arr = env.Trades
	}

	out := make([]entities.TradeRecord, 0, len(arr))
	for _, t := range arr {
		token := t.Token
		if token == "" {
			token = t.Mint
		}
		if token == "" {
			token = t.TokenAddress
		}
		side := t.Side
		if side == "" {
			side = t.Type
		}
		volume := float64(t.VolumeUSD)
		if volume == 0 {
			volume = float64(t.Volume)
		}
		var when time.Time
		if p := timePtr(t.Time, t.Timestamp); p != nil {
			when = *p
		}
		rec := entities.TradeRecord{
			Token:     token,
			Side:      side,
			Time:      when,
			VolumeUSD: volume,
		}
		if t.PnL != nil {
			pnl := float64(*t.PnL)
			rec.PnL = &pnl
		}
		out = append(out, rec)
	}
	return out
}

type traderWire struct {
	Wallet   string    `json:"wallet"`
	Owner    string    `json:"owner"`
	Address  string    `json:"address"`
	Total    flexFloat `json:"total"`
	PnL      flexFloat `json:"pnl"`
	Realized flexFloat `json:"realized"`
	Volume   flexFloat `json:"volume"`
	WinRate  flexFloat `json:"winPercentage"`
	WinRate2 flexFloat `json:"winRate"`
}

func (t *traderWire) identity() string {
	for _, s := range []string{t.Wallet, t.Owner, t.Address} {
		if s != "" {
			return s
		}
	}
	return ""
}

// decodeTraders handles a bare array or a {traders: [...]} envelope. The
// trader identity field may be named wallet, owner, or address.
func decodeTraders(raw []byte) []entities.TraderRecord {
	var arr []traderWire
	if err := json.Unmarshal(raw, &arr); err != nil {
		var env struct {
			Traders []traderWire `json:"traders"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil
		}
		arr = env.Traders
	}

	out := make([]entities.TraderRecord, 0, len(arr))
	for _, t := range arr {
		id := t.identity()
		if id == "" {
			continue
		}
		pnl := float64(t.Total)
		if pnl == 0 {
			pnl = float64(t.PnL)
		}
		if pnl == 0 {
			pnl = float64(t.Realized)
		}
		winRate := float64(t.WinRate)
		if winRate == 0 {
			winRate = float64(t.WinRate2)
		}
		out = append(out, entities.TraderRecord{
			Wallet:  id,
			PnL:     pnl,
			Volume:  float64(t.Volume),
			WinRate: winRate,
		})
	}
	return out
}

type positionWire struct {
	Token         string    `json:"token"`
	Mint          string    `json:"mint"`
	Realized      flexFloat `json:"realized"`
	RealizedPnl   flexFloat `json:"realizedPnl"`
	Unrealized    flexFloat `json:"unrealized"`
	UnrealizedPnl flexFloat `json:"unrealizedPnl"`
	ROI           flexFloat `json:"roi"`
}

func (p *positionWire) toPosition() entities.Position {
	realized := float64(p.RealizedPnl)
	if realized == 0 {
		realized = float64(p.Realized)
	}
	unrealized := float64(p.UnrealizedPnl)
	if unrealized == 0 {
		unrealized = float64(p.Unrealized)
	}
	token := p.Token
	if token == "" {
		token = p.Mint
	}
	return entities.Position{
		Token:         token,
		RealizedPnL:   realized,
		UnrealizedPnL: unrealized,
		ROI:           float64(p.ROI),
	}
}

// decodePnL returns nil when the upstream had no usable object at all.
// Positions may arrive as an array or as a map keyed by token address.
func decodePnL(raw []byte) *entities.PnLReport {
	var wire struct {
		Realized        flexFloat       `json:"realized"`
		TotalRealized   flexFloat       `json:"totalRealized"`
		Unrealized      flexFloat       `json:"unrealized"`
		TotalUnrealized flexFloat       `json:"totalUnrealized"`
		Positions       json.RawMessage `json:"positions"`
		Tokens          json.RawMessage `json:"tokens"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}

	report := &entities.PnLReport{
		TotalRealized:   float64(wire.TotalRealized),
		TotalUnrealized: float64(wire.TotalUnrealized),
	}
	if report.TotalRealized == 0 {
		report.TotalRealized = float64(wire.Realized)
	}
	if report.TotalUnrealized == 0 {
		report.TotalUnrealized = float64(wire.Unrealized)
	}

	for _, payload := range [][]byte{wire.Positions, wire.Tokens} {
		if len(payload) == 0 {
			continue
		}
		var list []positionWire
		if err := json.Unmarshal(payload, &list); err == nil && len(list) > 0 {
			for i := range list {
				report.Positions = append(report.Positions, list[i].toPosition())
			}
			break
		}
		var keyed map[string]positionWire
		if err := json.Unmarshal(payload, &keyed); err == nil && len(keyed) > 0 {
			for token, p := range keyed {
				pos := p.toPosition()
				if pos.Token == "" {
					pos.Token = token
				}
				report.Positions = append(report.Positions, pos)
			}
			break
		}
	}
	return report
}

type firstBuyerWire struct {
	Wallet       string    `json:"wallet"`
	Owner        string    `json:"owner"`
	Address      string    `json:"address"`
	FirstBuyTime *flexTime `json:"first_buy_time"`
	FirstBought  *flexTime `json:"firstBought"`
	Time         *flexTime `json:"time"`
	Invested     flexFloat `json:"totalInvested"`
	Total        flexFloat `json:"total"`
	TotalPnl     flexFloat `json:"totalPnl"`
	ROI          flexFloat `json:"roi"`
}

// decodeFirstBuyers handles a bare array of structured buyer records.
func decodeFirstBuyers(raw []byte) []entities.FirstBuyer {
	var arr []firstBuyerWire
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil
	}

	out := make([]entities.FirstBuyer, 0, len(arr))
	for _, b := range arr {
		id := b.Wallet
		if id == "" {
			id = b.Owner
		}
		if id == "" {
			id = b.Address
		}
		if id == "" {
			continue
		}
		pnl := float64(b.Total)
		if pnl == 0 {
			pnl = float64(b.TotalPnl)
		}
		var when time.Time
		if p := timePtr(b.FirstBuyTime, b.FirstBought, b.Time); p != nil {
			when = *p
		}
		out = append(out, entities.FirstBuyer{
			Wallet:      id,
			FirstBought: when,
			InvestedUSD: float64(b.Invested),
			TotalPnL:    pnl,
			ROI:         float64(b.ROI),
		})
	}
	return out
}

// decodeWalletBasic extracts the wallet's total USD value.
func decodeWalletBasic(raw []byte) float64 {
	var wire struct {
		Value      flexFloat `json:"value"`
		TotalValue flexFloat `json:"totalValue"`
		Total      flexFloat `json:"total"`
	}
	_ = json.Unmarshal(raw, &wire)
	for _, v := range []flexFloat{wire.Value, wire.TotalValue, wire.Total} {
		if v != 0 {
			return float64(v)
		}
	}
	return 0
}
