// Package flex2ledger converts Interactive Brokers Flex statements into
// plain-text ledger entries and auxiliary reports.
//
// The core functionalities include:
//   - Cash Transaction Classification: grouping the statement's cash activity
//     rows into economic events (a dividend and its withholding tax arrive as
//     two separate rows) and classifying each event into a known transaction
//     kind, with a deterministic fallback for kinds the statement invents.
//   - Posting Emission: turning classified events and trades into hledger
//     transactions, one blank-line separated block per event, with the cash
//     leg elided so the ledger tool balances it.
//   - Reports: an open-position listing and a dividend CSV export.
//   - Incremental Conversion: an optional cutoff queried from an existing
//     hledger journal so already-recorded history is not emitted twice.
//
// This package serves as the foundational logic for the `f2l` command-line
// tool; statement retrieval from the Flex Web Service lives in the flexquery
// subpackage.
package flex2ledger
