package flex2ledger

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Cash transaction type labels the statement is known to use. Any other label
// falls through to the generic emission path.
const (
	LabelDividends           = "Dividends"
	LabelWithholdingTax      = "Withholding Tax"
	LabelInterestReceived    = "Broker Interest Received"
	LabelInterestPaid        = "Broker Interest Paid"
	LabelOtherFees           = "Other Fees"
	LabelDepositsWithdrawals = "Deposits/Withdrawals"
)

// Asset categories of trades this tool can convert.
const (
	AssetStock = "STK"
	AssetForex = "CASH"
)

// LevelDetail is the levelOfDetail of individual cash transaction rows, as
// opposed to the rolled-up SUMMARY rows also present in the statement.
const LevelDetail = "DETAIL"

// queryResponse is the root element of a Flex statement document.
type queryResponse struct {
	XMLName    xml.Name    `xml:"FlexQueryResponse"`
	Statements []Statement `xml:"FlexStatements>FlexStatement"`
}

// Statement is one FlexStatement element: the activity of one account over
// one period. All leaf fields are kept as the source strings; typed accessors
// parse them at the point of use so a single malformed row does not fail the
// whole document.
type Statement struct {
	AccountID string `xml:"accountId,attr"`
	FromDate  string `xml:"fromDate,attr"`
	ToDate    string `xml:"toDate,attr"`

	AccountInformation AccountInformation `xml:"AccountInformation"`
	Trades             []Trade            `xml:"Trades>Trade"`
	CashTransactions   []CashTransaction  `xml:"CashTransactions>CashTransaction"`
	OpenPositions      []OpenPosition     `xml:"OpenPositions>OpenPosition"`
}

// AccountInformation identifies the account holder.
type AccountInformation struct {
	Name      string `xml:"name,attr"`
	AccountID string `xml:"accountId,attr"`
}

// CashTransaction is one row of the statement's cash activity section.
type CashTransaction struct {
	ConID         string `xml:"conid,attr"`
	DateTime      string `xml:"dateTime,attr"`
	ReportDate    string `xml:"reportDate,attr"`
	Type          string `xml:"type,attr"`
	Description   string `xml:"description,attr"`
	Currency      string `xml:"currency,attr"`
	Amount        string `xml:"amount,attr"`
	Symbol        string `xml:"symbol,attr"`
	LevelOfDetail string `xml:"levelOfDetail,attr"`
}

// Money parses the transaction amount, keeping the statement's sign
// convention (negative for cash outflows).
func (c CashTransaction) Money() (Money, error) {
	return ParseMoney(c.Amount, c.Currency)
}

// Trade is one execution from the statement's trades section.
type Trade struct {
	AssetCategory        string `xml:"assetCategory,attr"`
	Symbol               string `xml:"symbol,attr"`
	Currency             string `xml:"currency,attr"`
	Quantity             string `xml:"quantity,attr"`
	Proceeds             string `xml:"proceeds,attr"`
	IBCommission         string `xml:"ibCommission,attr"`
	IBCommissionCurrency string `xml:"ibCommissionCurrency,attr"`
	TradeDate            string `xml:"tradeDate,attr"`
	SettleDateTarget     string `xml:"settleDateTarget,attr"`
	DateTime             string `xml:"dateTime,attr"`
	Exchange             string `xml:"exchange,attr"`
	TradeID              string `xml:"tradeID,attr"`
	IBOrderID            string `xml:"ibOrderID,attr"`
}

// OpenPosition is one row of the statement's open positions section.
type OpenPosition struct {
	Symbol        string `xml:"symbol,attr"`
	Description   string `xml:"description,attr"`
	Currency      string `xml:"currency,attr"`
	Position      string `xml:"position,attr"`
	MarkPrice     string `xml:"markPrice,attr"`
	PositionValue string `xml:"positionValue,attr"`
	LevelOfDetail string `xml:"levelOfDetail,attr"`
}

// DecodeStatement decodes a Flex statement document and returns its first
// FlexStatement.
func DecodeStatement(r io.Reader) (*Statement, error) {
	var doc queryResponse
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse Flex statement: %w", err)
	}
	if len(doc.Statements) == 0 {
		return nil, fmt.Errorf("Flex document contains no FlexStatement")
	}
	return &doc.Statements[0], nil
}

// DetailCashTransactions returns the cash transactions with the DETAIL level
// of detail, the granularity at which grouping and classification operate.
func (s *Statement) DetailCashTransactions() []CashTransaction {
	var txs []CashTransaction
	for _, tx := range s.CashTransactions {
		if tx.LevelOfDetail == LevelDetail {
			txs = append(txs, tx)
		}
	}
	return txs
}
