package bigquery

import (
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
)

type AccountRow struct {
	AccountID string `bigquery:"account_id"` // REQUIRED

	UserID          string   `bigquery:"user_id"`          // NULLABLE (empty string → "")
	AccountType     string   `bigquery:"account_type"`     // NULLABLE
	AccountNickname string   `bigquery:"account_nickname"` // NULLABLE
	Balance         *big.Rat `bigquery:"balance"`          // NUMERIC
	Currency        string   `bigquery:"currency"`         // NULLABLE
}

type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id"` // REQUIRED

	AccountID   string    `bigquery:"account_id"`
	UserID      string    `bigquery:"user_id"`
	Date        time.Time `bigquery:"date"` // TIMESTAMP
	Description string    `bigquery:"description"`
	Amount      *big.Rat  `bigquery:"amount"` // NUMERIC, signed
	Currency    string    `bigquery:"currency"`
	Type        string    `bigquery:"type"`
	Memo        string    `bigquery:"memo"`
}

type BillerRow struct {
	BillerID string `bigquery:"biller_id"` // REQUIRED

	UserID                  string            `bigquery:"user_id"`
	BillerName              string            `bigquery:"biller_name"`
	BillerType              string            `bigquery:"biller_type"`
	AccountNumber           string            `bigquery:"account_number"`
	PayeeNickname           string            `bigquery:"payee_nickname"`
	DefaultPaymentAccountID string            `bigquery:"default_payment_account_id"`
	Status                  string            `bigquery:"status"` // ACTIVE | INACTIVE
	DueAmount               *big.Rat          `bigquery:"due_amount"`
	DueDate                 bigquery.NullDate `bigquery:"due_date"` // DATE, NULLABLE
	RegistrationTS          time.Time         `bigquery:"registration_ts"`
	LastUpdatedTS           time.Time         `bigquery:"last_updated_ts"`
}
