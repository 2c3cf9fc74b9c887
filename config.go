package flex2ledger

import (
	"encoding/json"
	"fmt"
	"os"
)

// Default accounts used when the configuration file leaves them out.
const (
	DefaultFeesAccount            = "Expenses:Fees:Brokerage"
	DefaultDividendsAccount       = "Income:Dividends"
	DefaultWithholdingsAccount    = "Expenses:Taxes:US Withholding Tax"
	DefaultInterestIncomeAccount  = "Income:Interest"
	DefaultInterestExpenseAccount = "Expenses:Interest"
)

// Config holds the account routing and web-service options for a conversion.
// It is read once from a JSON file and passed around read-only.
type Config struct {
	StockAccount           string `json:"stock_account"`            // asset account for stock positions
	CashAccount            string `json:"cash_account"`             // asset account for cash, also the elided leg of every transaction
	FeesAccount            string `json:"fees_account"`             // expenses account for fees and commissions
	DividendsAccount       string `json:"dividends_account"`        // revenue account for dividend income
	WithholdingsAccount    string `json:"withholdings_account"`     // expenses account for withholding tax
	InterestIncomeAccount  string `json:"interest_income_account"`  // revenue account for interest received
	InterestExpenseAccount string `json:"interest_expense_account"` // expenses account for interest paid

	// IgnoreDepositsWithdrawals drops "Deposits/Withdrawals" cash transactions
	// from the output entirely.
	IgnoreDepositsWithdrawals bool `json:"ignore_deposits_withdrawals,omitempty"`

	// APIToken authenticates against the IBKR Flex web service.
	APIToken string `json:"api_token,omitempty"`
	// QueryID identifies the Flex query to execute.
	QueryID string `json:"query_id,omitempty"`
}

// LoadConfig reads a configuration from a JSON file, applies defaults and
// validates it.
func LoadConfig(filename string) (Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Config{}, fmt.Errorf("cannot open config file %q: %w", filename, err)
	}
	defer f.Close()

	var c Config
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("cannot parse config file %q: %w", filename, err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %q: %w", filename, err)
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.CashAccount == "" {
		// The stock account is an acceptable stand-in for cash postings.
		c.CashAccount = c.StockAccount
	}
	if c.FeesAccount == "" {
		c.FeesAccount = DefaultFeesAccount
	}
	if c.DividendsAccount == "" {
		c.DividendsAccount = DefaultDividendsAccount
	}
	if c.WithholdingsAccount == "" {
		c.WithholdingsAccount = DefaultWithholdingsAccount
	}
	if c.InterestIncomeAccount == "" {
		c.InterestIncomeAccount = DefaultInterestIncomeAccount
	}
	if c.InterestExpenseAccount == "" {
		c.InterestExpenseAccount = DefaultInterestExpenseAccount
	}
}

// Validate reports whether the configuration is usable for emitting postings.
// A cash account is mandatory: without it no transaction can balance.
func (c Config) Validate() error {
	if c.CashAccount == "" {
		return fmt.Errorf("missing required account %q (or %q as a fallback)", "cash_account", "stock_account")
	}
	return nil
}
