package flex2ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
)

// WritePositions prints the statement's open positions as an aligned text
// listing, one line per position, with the market value formatted in the
// position's currency.
func WritePositions(w io.Writer, positions []OpenPosition) error {
	for _, p := range positions {
		if p.LevelOfDetail != "" && p.LevelOfDetail != LevelDetail {
			continue
		}
		value, err := ParseMoney(p.PositionValue, p.Currency)
		if err != nil {
			log.Printf("skipping position %s: bad positionValue %q: %v", p.Symbol, p.PositionValue, err)
			continue
		}
		if _, err := fmt.Fprintf(w, "%-10s %12s %12s  %s\n", p.Symbol, p.Position, value.String(), p.Description); err != nil {
			return err
		}
	}
	return nil
}

// WriteDividendCSV exports every cash transaction labeled "Dividends" as CSV.
// Unlike the ledger path this takes the statement's cash activity unfiltered:
// the export is usually run on the rolled-up SUMMARY rows.
func WriteDividendCSV(w io.Writer, txs []CashTransaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"reportDate", "symbol", "description", "currency", "amount"}); err != nil {
		return fmt.Errorf("cannot write dividend CSV: %w", err)
	}
	for _, tx := range txs {
		if tx.Type != LabelDividends {
			continue
		}
		if err := cw.Write([]string{tx.ReportDate, tx.Symbol, tx.Description, tx.Currency, tx.Amount}); err != nil {
			return fmt.Errorf("cannot write dividend CSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
