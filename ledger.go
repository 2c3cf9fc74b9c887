package flex2ledger

import (
	"bufio"
	"fmt"
	"io"
	"log"

	"github.com/etnz/flex2ledger/date"
)

// Payee and account placeholders the downstream ledger edits by hand.
const (
	brokerPayee    = "Interactive Brokers"
	unknownPayee   = "UNKNOWN"
	unknownAccount = "UNKNOWN_ACCOUNT"
)

// WriteLedger converts a whole statement, trades first then cash activity,
// into hledger text. Transactions dated on or before cutoff are dropped; a
// zero cutoff keeps everything.
//
// Each transaction block ends with exactly one blank line: the downstream
// ledger tool uses it as the transaction delimiter.
func WriteLedger(w io.Writer, s *Statement, cfg Config, cutoff date.Date) error {
	bw := bufio.NewWriter(w)
	writeTrades(bw, s.Trades, cfg, cutoff)
	writeCashTransactions(bw, s.DetailCashTransactions(), cfg, cutoff)
	return bw.Flush()
}

// WriteCashLedger converts cash activity only. The input must already be
// filtered to the desired level of detail.
func WriteCashLedger(w io.Writer, txs []CashTransaction, cfg Config, cutoff date.Date) error {
	bw := bufio.NewWriter(w)
	writeCashTransactions(bw, txs, cfg, cutoff)
	return bw.Flush()
}

func writeCashTransactions(w io.Writer, txs []CashTransaction, cfg Config, cutoff date.Date) {
	groups := GroupCashTransactions(txs)
	for _, key := range SortedKeys(groups) {
		d, err := date.ParseDateTime(key.DateTime)
		if err != nil {
			log.Printf("skipping cash transactions for conid %s: %v", key.ConID, err)
			continue
		}
		if !d.After(cutoff) {
			continue
		}
		for _, item := range Classify(groups[key]) {
			writeItem(w, item, cfg)
		}
	}
}

func writeItem(w io.Writer, item Item, cfg Config) {
	switch it := item.(type) {
	case DividendWithWithholding:
		dividend, err := it.Dividend.Money()
		if err != nil {
			log.Printf("skipping dividend on %s (%s): %v", it.Dividend.ReportDate, it.Dividend.Symbol, err)
			return
		}
		tax, err := it.Tax.Money()
		if err != nil {
			log.Printf("skipping dividend on %s (%s): %v", it.Dividend.ReportDate, it.Dividend.Symbol, err)
			return
		}
		fmt.Fprintf(w, "%s * %s\n", it.Dividend.ReportDate, it.Dividend.Symbol)
		fmt.Fprintf(w, "  ; %s\n", it.Dividend.Description)
		fmt.Fprintf(w, "  %s  %s\n", cfg.DividendsAccount, dividend.Neg().Ledger())
		fmt.Fprintf(w, "  %s  %s\n", cfg.WithholdingsAccount, tax.Neg().Ledger())
		fmt.Fprintf(w, "  %s\n", cfg.CashAccount)
		fmt.Fprintln(w)
	case Single:
		writeSingle(w, it, cfg)
	}
}

func writeSingle(w io.Writer, s Single, cfg Config) {
	if s.Label == LabelDepositsWithdrawals && cfg.IgnoreDepositsWithdrawals {
		return
	}
	amount, err := s.Tx.Money()
	if err != nil {
		log.Printf("skipping %q cash transaction on %s: %v", s.Label, s.Tx.ReportDate, err)
		return
	}

	switch s.Label {
	case LabelDividends:
		// A dividend whose withholding tax did not pair up (or has none).
		writeEntry(w, s.Tx.Symbol, s.Tx, cfg.DividendsAccount, amount.Neg(), cfg.CashAccount)
	case LabelInterestReceived:
		writeEntry(w, brokerPayee, s.Tx, cfg.InterestIncomeAccount, amount.Neg(), cfg.CashAccount)
	case LabelInterestPaid:
		writeEntry(w, brokerPayee, s.Tx, cfg.InterestExpenseAccount, amount.Neg(), cfg.CashAccount)
	case LabelOtherFees:
		writeEntry(w, brokerPayee, s.Tx, cfg.FeesAccount, amount.Neg(), cfg.CashAccount)
	case LabelDepositsWithdrawals:
		fmt.Fprintf(w, "%s * %s\n", s.Tx.ReportDate, unknownPayee)
		fmt.Fprintf(w, "  ; %s\n", s.Tx.Description)
		fmt.Fprintf(w, "  %s  %s\n", cfg.CashAccount, amount.Ledger())
		fmt.Fprintf(w, "  %s\n", unknownAccount)
		fmt.Fprintln(w)
	default:
		// Unknown label: book against cash and leave the counter-posting for
		// review, annotated with the raw statement type.
		fmt.Fprintf(w, "%s * %s\n", s.Tx.ReportDate, brokerPayee)
		fmt.Fprintf(w, "  ; %s\n", s.Tx.Description)
		fmt.Fprintf(w, "  ; cash_transaction_type: %s\n", s.Label)
		fmt.Fprintf(w, "  %s  %s\n", cfg.CashAccount, amount.Ledger())
		if amount.IsNegative() {
			fmt.Fprintf(w, "  %s\n", cfg.FeesAccount)
		} else {
			fmt.Fprintf(w, "  %s\n", unknownAccount)
		}
		fmt.Fprintln(w)
	}
}

// writeEntry emits the common two-posting shape: the routed account with an
// explicit amount, and the cash account elided so the ledger tool balances it.
func writeEntry(w io.Writer, payee string, tx CashTransaction, account string, amount Money, cashAccount string) {
	fmt.Fprintf(w, "%s * %s\n", tx.ReportDate, payee)
	fmt.Fprintf(w, "  ; %s\n", tx.Description)
	fmt.Fprintf(w, "  %s  %s\n", account, amount.Ledger())
	fmt.Fprintf(w, "  %s\n", cashAccount)
	fmt.Fprintln(w)
}
