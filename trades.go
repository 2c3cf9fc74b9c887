package flex2ledger

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"slices"
	"strings"

	"github.com/etnz/flex2ledger/date"
	"github.com/shopspring/decimal"
)

// WriteTrades converts the statement's trades into hledger text, sorted by
// execution time. Trades dated on or before cutoff are dropped.
func WriteTrades(w io.Writer, trades []Trade, cfg Config, cutoff date.Date) error {
	bw := bufio.NewWriter(w)
	writeTrades(bw, trades, cfg, cutoff)
	return bw.Flush()
}

func writeTrades(w io.Writer, trades []Trade, cfg Config, cutoff date.Date) {
	sorted := slices.Clone(trades)
	slices.SortFunc(sorted, func(a, b Trade) int {
		ta, errA := date.ParseTime(a.DateTime)
		tb, errB := date.ParseTime(b.DateTime)
		if errA == nil && errB == nil {
			if c := ta.Compare(tb); c != 0 {
				return c
			}
		}
		return strings.Compare(a.DateTime, b.DateTime)
	})

	for _, t := range sorted {
		d, err := date.ParseDateTime(t.TradeDate)
		if err != nil {
			log.Printf("skipping trade %s (%s): %v", t.TradeID, t.Symbol, err)
			continue
		}
		if !d.After(cutoff) {
			continue
		}
		switch t.AssetCategory {
		case AssetForex:
			writeForexTrade(w, t, cfg)
		case AssetStock:
			writeStockTrade(w, t, cfg)
		default:
			log.Printf("dropping trade %s (%s) with unknown assetCategory=%q", t.TradeID, t.Symbol, t.AssetCategory)
		}
	}
}

func tradeHeader(w io.Writer, t Trade) {
	fmt.Fprintf(w, "%s=%s * %s\n", t.SettleDateTarget, t.TradeDate, t.Exchange)
	fmt.Fprintf(w, "  ; trade_id: %s\n", t.TradeID)
	fmt.Fprintf(w, "  ; order_id: %s\n", t.IBOrderID)
}

func writeStockTrade(w io.Writer, t Trade, cfg Config) {
	quantity, proceeds, commission, err := tradeAmounts(t)
	if err != nil {
		log.Printf("skipping trade %s (%s): %v", t.TradeID, t.Symbol, err)
		return
	}
	tradeHeader(w, t)
	fmt.Fprintf(w, "  %s  %q %s\n", cfg.StockAccount, t.Symbol, ledgerDecimal(quantity))
	fmt.Fprintf(w, "  %s  %s %s\n", cfg.CashAccount, t.Currency, ledgerDecimal(proceeds))
	writeCommission(w, t, cfg, commission)
	fmt.Fprintln(w)
}

// writeForexTrade books a currency conversion as two cash legs. The Flex
// symbol of a forex trade is "BASE.QUOTE": the quantity is in the base
// currency and the proceeds in the quote currency.
func writeForexTrade(w io.Writer, t Trade, cfg Config) {
	quantity, proceeds, commission, err := tradeAmounts(t)
	if err != nil {
		log.Printf("skipping trade %s (%s): %v", t.TradeID, t.Symbol, err)
		return
	}
	base, quote, ok := strings.Cut(t.Symbol, ".")
	if !ok {
		log.Printf("skipping forex trade %s: symbol %q is not a currency pair", t.TradeID, t.Symbol)
		return
	}
	tradeHeader(w, t)
	fmt.Fprintf(w, "  %s  %s %s\n", cfg.CashAccount, base, ledgerDecimal(quantity))
	fmt.Fprintf(w, "  %s  %s %s\n", cfg.CashAccount, quote, ledgerDecimal(proceeds))
	writeCommission(w, t, cfg, commission)
	fmt.Fprintln(w)
}

// writeCommission moves the (negative) commission out of cash into fees.
func writeCommission(w io.Writer, t Trade, cfg Config, commission decimal.Decimal) {
	fmt.Fprintf(w, "  %s  %s %s\n", cfg.CashAccount, t.IBCommissionCurrency, ledgerDecimal(commission))
	fmt.Fprintf(w, "  %s  %s %s\n", cfg.FeesAccount, t.IBCommissionCurrency, ledgerDecimal(commission.Neg()))
}

func tradeAmounts(t Trade) (quantity, proceeds, commission decimal.Decimal, err error) {
	if quantity, err = decimal.NewFromString(t.Quantity); err != nil {
		return quantity, proceeds, commission, fmt.Errorf("bad quantity %q: %w", t.Quantity, err)
	}
	if proceeds, err = decimal.NewFromString(t.Proceeds); err != nil {
		return quantity, proceeds, commission, fmt.Errorf("bad proceeds %q: %w", t.Proceeds, err)
	}
	if commission, err = decimal.NewFromString(t.IBCommission); err != nil {
		return quantity, proceeds, commission, fmt.Errorf("bad ibCommission %q: %w", t.IBCommission, err)
	}
	return quantity, proceeds, commission, nil
}
