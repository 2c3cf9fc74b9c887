package flex2ledger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/etnz/flex2ledger/date"
)

func stockTrade() Trade {
	return Trade{
		AssetCategory:        AssetStock,
		Symbol:               "ACME",
		Currency:             "USD",
		Quantity:             "10",
		Proceeds:             "-1052.50",
		IBCommission:         "-1.25",
		IBCommissionCurrency: "USD",
		TradeDate:            "2023-01-10",
		SettleDateTarget:     "2023-01-12",
		DateTime:             "2023-01-10 14:30:00",
		Exchange:             "NYSE",
		TradeID:              "100001",
		IBOrderID:            "200001",
	}
}

func TestWriteTradesStock(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTrades(&buf, []Trade{stockTrade()}, testConfig(), date.Date{}); err != nil {
		t.Fatalf("WriteTrades() returned an unexpected error: %v", err)
	}

	want := `2023-01-12=2023-01-10 * NYSE
  ; trade_id: 100001
  ; order_id: 200001
  Assets:IB:Stocks  "ACME" 10.0
  Assets:IB:Cash  USD -1052.5
  Assets:IB:Cash  USD -1.25
  Expenses:Fees:Brokerage  USD 1.25

`
	if buf.String() != want {
		t.Errorf("WriteTrades() output mismatch:\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteTradesForex(t *testing.T) {
	trade := stockTrade()
	trade.AssetCategory = AssetForex
	trade.Symbol = "EUR.USD"
	trade.Quantity = "1000"
	trade.Proceeds = "-1085.00"
	trade.Exchange = "IDEALFX"

	var buf bytes.Buffer
	if err := WriteTrades(&buf, []Trade{trade}, testConfig(), date.Date{}); err != nil {
		t.Fatalf("WriteTrades() returned an unexpected error: %v", err)
	}

	want := `2023-01-12=2023-01-10 * IDEALFX
  ; trade_id: 100001
  ; order_id: 200001
  Assets:IB:Cash  EUR 1000.0
  Assets:IB:Cash  USD -1085.0
  Assets:IB:Cash  USD -1.25
  Expenses:Fees:Brokerage  USD 1.25

`
	if buf.String() != want {
		t.Errorf("WriteTrades() output mismatch:\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteTradesDropsUnknownAssetCategory(t *testing.T) {
	trade := stockTrade()
	trade.AssetCategory = "OPT"

	var buf bytes.Buffer
	if err := WriteTrades(&buf, []Trade{trade}, testConfig(), date.Date{}); err != nil {
		t.Fatalf("WriteTrades() returned an unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("unknown asset category still produced output:\n%s", buf.String())
	}
}

func TestWriteTradesSortsAndFilters(t *testing.T) {
	second := stockTrade()
	first := stockTrade()
	first.TradeDate = "2023-01-02"
	first.SettleDateTarget = "2023-01-04"
	first.DateTime = "2023-01-02 10:00:00"
	first.TradeID = "100000"
	old := stockTrade()
	old.TradeDate = "2022-12-15"
	old.DateTime = "2022-12-15 10:00:00"
	old.TradeID = "99999"

	var buf bytes.Buffer
	cutoff := date.MustParse("2022-12-31")
	if err := WriteTrades(&buf, []Trade{second, old, first}, testConfig(), cutoff); err != nil {
		t.Fatalf("WriteTrades() returned an unexpected error: %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "99999") {
		t.Errorf("cutoff kept a trade dated on or before it:\n%s", out)
	}
	if strings.Index(out, "100000") > strings.Index(out, "100001") {
		t.Errorf("trades not in chronological order:\n%s", out)
	}
}

func TestWriteTradesSkipsBadAmounts(t *testing.T) {
	broken := stockTrade()
	broken.Quantity = "ten"

	var buf bytes.Buffer
	if err := WriteTrades(&buf, []Trade{broken, stockTrade()}, testConfig(), date.Date{}); err != nil {
		t.Fatalf("WriteTrades() returned an unexpected error: %v", err)
	}
	if got := strings.Count(buf.String(), "trade_id:"); got != 1 {
		t.Errorf("emitted %d trades, want only the valid one", got)
	}
}
