package ledger

import (
	"encoding/json"
	"math/big"
	"time"

	"cloud.google.com/go/civil"
)

// Account is a single bank account row. Balance is only ever mutated by the
// transfer engine through the store's atomic operations.
type Account struct {
	AccountID       string
	UserID          string
	AccountType     string
	AccountNickname string
	Balance         *big.Rat
	Currency        string
}

// MarshalJSON renders the wire form delivered through tool responses:
// snake_case keys and a decimal balance. account_name mirrors the account
// type, which doubles as the display name.
func (a Account) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		AccountID       string  `json:"account_id"`
		AccountName     string  `json:"account_name"`
		AccountType     string  `json:"account_type"`
		Balance         float64 `json:"balance"`
		Currency        string  `json:"currency"`
		AccountNickname string  `json:"account_nickname,omitempty"`
	}{a.AccountID, a.AccountType, a.AccountType, MoneyFloat(a.Balance), a.Currency, a.AccountNickname})
}

// BillerStatus is the lifecycle state of a registered biller.
type BillerStatus string

const (
	BillerActive   BillerStatus = "ACTIVE"
	BillerInactive BillerStatus = "INACTIVE"
)

// Biller is a registered payee. Removal is a soft flip to INACTIVE; rows are
// never physically deleted.
type Biller struct {
	BillerID                string
	UserID                  string
	BillerName              string
	BillerType              string
	AccountNumber           string
	PayeeNickname           string
	DefaultPaymentAccountID string
	Status                  BillerStatus
	DueAmount               *big.Rat
	DueDate                 civil.Date
	HasDueDate              bool
	RegistrationTS          time.Time
	LastUpdatedTS           time.Time
}

// MarshalJSON renders the biller's wire form: snake_case keys, a decimal due
// amount, and the due date as YYYY-MM-DD when one is set. Lifecycle fields
// (status, timestamps) stay internal.
func (b Biller) MarshalJSON() ([]byte, error) {
	out := struct {
		BillerID                string  `json:"biller_id"`
		BillerName              string  `json:"biller_name"`
		BillerType              string  `json:"biller_type"`
		AccountNumber           string  `json:"account_number"`
		PayeeNickname           string  `json:"payee_nickname,omitempty"`
		DefaultPaymentAccountID string  `json:"default_payment_account_id,omitempty"`
		DueAmount               float64 `json:"due_amount"`
		DueDate                 string  `json:"due_date,omitempty"`
	}{
		BillerID:                b.BillerID,
		BillerName:              b.BillerName,
		BillerType:              b.BillerType,
		AccountNumber:           b.AccountNumber,
		PayeeNickname:           b.PayeeNickname,
		DefaultPaymentAccountID: b.DefaultPaymentAccountID,
		DueAmount:               MoneyFloat(b.DueAmount),
	}
	if b.HasDueDate {
		out.DueDate = b.DueDate.String()
	}
	return json.Marshal(out)
}

// TransactionType classifies a ledger row.
type TransactionType string

const (
	TxnTransferDebit  TransactionType = "transfer_debit"
	TxnTransferCredit TransactionType = "transfer_credit"
	TxnBillPayment    TransactionType = "bill_payment"
)

// Transaction is one immutable ledger row: the debit or credit half of a
// transfer, or the single debit leg of a bill payment. Amount is signed.
type Transaction struct {
	TransactionID string
	AccountID     string
	UserID        string
	Date          time.Time
	Description   string
	Amount        *big.Rat
	Currency      string
	Type          TransactionType
	Memo          string
}

// MarshalJSON renders the transaction's wire form: snake_case keys, a signed
// decimal amount, and the date in RFC 3339.
func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TransactionID string          `json:"transaction_id"`
		Date          string          `json:"date"`
		Description   string          `json:"description"`
		Amount        float64         `json:"amount"`
		Currency      string          `json:"currency"`
		Type          TransactionType `json:"type"`
	}{t.TransactionID, t.Date.Format(time.RFC3339), t.Description, MoneyFloat(t.Amount), t.Currency, t.Type})
}

// BillerUpdate is the closed set of patchable biller fields. A nil field means
// "leave unchanged"; the allow-list is enforced by the type itself rather than
// a runtime membership check.
type BillerUpdate struct {
	BillerName              *string
	BillerType              *string
	AccountNumber           *string
	PayeeNickname           *string
	DefaultPaymentAccountID *string
	Status                  *BillerStatus
	DueAmount               *big.Rat
	DueDate                 *civil.Date
}

// IsEmpty reports whether no field is set.
func (u BillerUpdate) IsEmpty() bool {
	return u.BillerName == nil && u.BillerType == nil && u.AccountNumber == nil &&
		u.PayeeNickname == nil && u.DefaultPaymentAccountID == nil &&
		u.Status == nil && u.DueAmount == nil && u.DueDate == nil
}

// AccountResult is the payload for single-account lookups.
type AccountResult struct {
	Status      Status   `json:"status"`
	Message     string   `json:"message,omitempty"`
	AccountID   string   `json:"account_id,omitempty"`
	AccountType string   `json:"account_type,omitempty"`
	Balance     *big.Rat `json:"-"`
	BalanceF    float64  `json:"balance,omitempty"`
	Currency    string   `json:"currency,omitempty"`
}

// AccountsResult is the payload for listing a user's accounts.
type AccountsResult struct {
	Status   Status    `json:"status"`
	Message  string    `json:"message,omitempty"`
	Accounts []Account `json:"accounts,omitempty"`
}

// TransactionsResult is the payload for transaction history lookups.
type TransactionsResult struct {
	Status       Status        `json:"status"`
	Message      string        `json:"message,omitempty"`
	Transactions []Transaction `json:"transactions,omitempty"`
}

// TransferCheckResult is the quote returned by InitiateTransferCheck. A quote
// reserves nothing; ExecuteTransfer re-validates from scratch.
type TransferCheckResult struct {
	Status          Status  `json:"status"`
	Message         string  `json:"message,omitempty"`
	FromAccountID   string  `json:"from_account_id,omitempty"`
	ToAccountID     string  `json:"to_account_id,omitempty"`
	FromBalance     float64 `json:"from_account_balance,omitempty"`
	TransferAmount  float64 `json:"transfer_amount,omitempty"`
	CurrentBalance  float64 `json:"current_balance,omitempty"`
	RequestedAmount float64 `json:"requested_amount,omitempty"`
	Currency        string  `json:"currency,omitempty"`
}

// TransferResult is returned by ExecuteTransfer.
type TransferResult struct {
	Status          Status  `json:"status"`
	Message         string  `json:"message,omitempty"`
	TransactionID   string  `json:"transaction_id,omitempty"`
	FromAccountID   string  `json:"from_account_id,omitempty"`
	ToAccountID     string  `json:"to_account_id,omitempty"`
	CurrentBalance  float64 `json:"current_balance,omitempty"`
	RequestedAmount float64 `json:"requested_amount,omitempty"`
	Currency        string  `json:"currency,omitempty"`
}

// BillPaymentResult is returned by PayBill.
type BillPaymentResult struct {
	Status             Status  `json:"status"`
	Message            string  `json:"message,omitempty"`
	ConfirmationNumber string  `json:"confirmation_number,omitempty"`
	TransactionID      string  `json:"transaction_id,omitempty"`
	BillerName         string  `json:"biller_name,omitempty"`
	AmountPaid         float64 `json:"amount_paid,omitempty"`
	Currency           string  `json:"currency,omitempty"`
	FromAccountID      string  `json:"from_account_id,omitempty"`
	CurrentBalance     float64 `json:"current_balance,omitempty"`
	RequestedAmount    float64 `json:"requested_amount,omitempty"`
	PayeeID            string  `json:"payee_id,omitempty"`
}

// BillerResult is the payload for FindBiller: exactly one of the single-record
// fields or the Billers candidate list is populated, per Status.
type BillerResult struct {
	Status                  Status   `json:"status"`
	Message                 string   `json:"message,omitempty"`
	BillerID                string   `json:"biller_id,omitempty"`
	BillerName              string   `json:"biller_name,omitempty"`
	DueAmount               float64  `json:"due_amount,omitempty"`
	DueDate                 string   `json:"due_date,omitempty"`
	DefaultPaymentAccountID string   `json:"default_payment_account_id,omitempty"`
	Billers                 []Biller `json:"billers,omitempty"`
}

// BillersResult is the payload for ListBillers.
type BillersResult struct {
	Status  Status   `json:"status"`
	Message string   `json:"message,omitempty"`
	Billers []Biller `json:"billers"`
}

// RegisterResult is returned by RegisterBiller. On ERROR_DUPLICATE_BILLER the
// BillerID carries the existing active biller's id.
type RegisterResult struct {
	Status   Status `json:"status"`
	Message  string `json:"message,omitempty"`
	BillerID string `json:"biller_id,omitempty"`
}

// UpdateResult is returned by UpdateBiller and RemoveBiller.
type UpdateResult struct {
	Status      Status `json:"status"`
	Message     string `json:"message,omitempty"`
	PayeeID     string `json:"payee_id,omitempty"`
	UpdatedRows int64  `json:"updated_rows,omitempty"`
}

// ResolvedAccount is one scored candidate from the natural-language resolver.
type ResolvedAccount struct {
	AccountID       string `json:"account_id"`
	AccountName     string `json:"account_name"`
	AccountNickname string `json:"account_nickname,omitempty"`
	AccountType     string `json:"account_type"`
	Score           int    `json:"score"`
}

// ResolveResult is the payload for natural-language account resolution.
type ResolveResult struct {
	Status          Status            `json:"status"`
	Message         string            `json:"message,omitempty"`
	AccountID       string            `json:"account_id,omitempty"`
	AccountName     string            `json:"account_name,omitempty"`
	AccountNickname string            `json:"account_nickname,omitempty"`
	AccountType     string            `json:"account_type,omitempty"`
	Options         []ResolvedAccount `json:"options,omitempty"`
}
