package flex2ledger

import (
	"bytes"
	"encoding/csv"
	"io"
	"log"
	"os/exec"

	"github.com/etnz/flex2ledger/date"
)

// LatestTransactionDate queries the hledger journal for the most recent
// transaction date recorded on account, to be used as the conversion cutoff.
//
// Any failure (hledger not installed, empty register, unparsable output)
// reports ok=false and the conversion proceeds without a cutoff. History
// lookup must never abort a run.
func LatestTransactionDate(account string) (cutoff date.Date, ok bool) {
	out, err := exec.Command("hledger", "aregister", "-O", "csv", "--date2", account).Output()
	if err != nil {
		log.Printf("cannot query hledger for %q, converting without cutoff: %v", account, err)
		return date.Date{}, false
	}
	cutoff, ok = latestDateFromCSV(bytes.NewReader(out))
	if !ok {
		log.Printf("no usable transaction date in hledger register for %q, converting without cutoff", account)
	}
	return cutoff, ok
}

// latestDateFromCSV extracts the date of the last row of an hledger aregister
// CSV export. The register is chronological, so the last row is the latest.
func latestDateFromCSV(r io.Reader) (date.Date, bool) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil || len(records) < 2 {
		return date.Date{}, false
	}

	dateCol := -1
	for i, name := range records[0] {
		if name == "date" {
			dateCol = i
			break
		}
	}
	last := records[len(records)-1]
	if dateCol < 0 || dateCol >= len(last) {
		return date.Date{}, false
	}
	d, err := date.Parse(last[dateCol])
	if err != nil {
		return date.Date{}, false
	}
	return d, true
}
