package flex2ledger

import (
	"slices"
	"strings"

	"github.com/etnz/flex2ledger/date"
)

// GroupKey identifies the economic event a cash transaction belongs to: the
// statement reports the legs of one event (a dividend and its withholding
// tax) as separate rows sharing the same instrument and timestamp. Keys
// compare by exact string equality, no fuzzy date matching.
type GroupKey struct {
	ConID    string
	DateTime string
}

// GroupCashTransactions partitions cash transactions by (conid, dateTime).
// Statement order is preserved within each group. Callers are expected to
// have filtered on the level of detail they want first.
func GroupCashTransactions(txs []CashTransaction) map[GroupKey][]CashTransaction {
	groups := make(map[GroupKey][]CashTransaction)
	for _, tx := range txs {
		key := GroupKey{ConID: tx.ConID, DateTime: tx.DateTime}
		groups[key] = append(groups[key], tx)
	}
	return groups
}

// SortedKeys returns the group keys in chronological order. Timestamps that
// parse are compared as times; the raw string and the conid break ties so the
// order is total and deterministic.
func SortedKeys(groups map[GroupKey][]CashTransaction) []GroupKey {
	keys := make([]GroupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b GroupKey) int {
		ta, errA := date.ParseTime(a.DateTime)
		tb, errB := date.ParseTime(b.DateTime)
		if errA == nil && errB == nil {
			if c := ta.Compare(tb); c != 0 {
				return c
			}
		}
		if c := strings.Compare(a.DateTime, b.DateTime); c != 0 {
			return c
		}
		return strings.Compare(a.ConID, b.ConID)
	})
	return keys
}
