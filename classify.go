package flex2ledger

// Item is a classified cash transaction event, either a recognized
// multi-record pattern or a single record kept on its own.
type Item interface {
	isItem()
}

// DividendWithWithholding is a dividend payment and the withholding tax
// retained on it, reported by the statement as two rows of one event.
type DividendWithWithholding struct {
	Dividend CashTransaction
	Tax      CashTransaction
}

func (DividendWithWithholding) isItem() {}

// Single is any cash transaction emitted on its own, its type label kept
// verbatim. Labels the emitter does not recognize take the generic path.
type Single struct {
	Label string
	Tx    CashTransaction
}

func (Single) isItem() {}

// Classify inspects one group's records and produces the classified items.
//
// A group holding exactly one "Dividends" and exactly one "Withholding Tax"
// record yields a combined DividendWithWithholding. The arity check is
// strict: with several dividend lots on the same instrument and timestamp
// there is no reliable way to pair taxes to lots, so every record falls
// through as a Single instead.
//
// Classification never fails: every record ends up in exactly one item.
func Classify(group []CashTransaction) []Item {
	byLabel := make(map[string][]CashTransaction)
	var labels []string // first-seen label order, to keep the result deterministic
	for _, tx := range group {
		if _, seen := byLabel[tx.Type]; !seen {
			labels = append(labels, tx.Type)
		}
		byLabel[tx.Type] = append(byLabel[tx.Type], tx)
	}

	var items []Item
	if len(byLabel[LabelDividends]) == 1 && len(byLabel[LabelWithholdingTax]) == 1 {
		items = append(items, DividendWithWithholding{
			Dividend: byLabel[LabelDividends][0],
			Tax:      byLabel[LabelWithholdingTax][0],
		})
		delete(byLabel, LabelDividends)
		delete(byLabel, LabelWithholdingTax)
	}

	for _, label := range labels {
		for _, tx := range byLabel[label] {
			items = append(items, Single{Label: label, Tx: tx})
		}
	}
	return items
}
