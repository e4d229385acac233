package ledger

import (
	"context"
	"errors"
	"math/big"
	"time"
)

// Sentinel errors a Store implementation returns for expected lookup
// outcomes. Anything else is treated as an infrastructure failure.
var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("ledger: not found")
	// ErrNotInitialized means the backing client was never configured; every
	// operation short-circuits on it before touching the store.
	ErrNotInitialized = errors.New("ledger: store client not initialized")
)

// BillerFilter narrows FindBillers. Empty fields are not applied.
type BillerFilter struct {
	BillerType    string
	PayeeNickname string
	ActiveOnly    bool
}

// TransferLegs is the atomic four-write unit of a fund transfer: two balance
// updates plus the debit and credit ledger rows. A Store must apply all four
// writes or none.
type TransferLegs struct {
	UserID              string
	FromAccountID       string
	ToAccountID         string
	Amount              *big.Rat
	Currency            string
	DebitTransactionID  string
	CreditTransactionID string
	DebitDescription    string
	CreditDescription   string
	Memo                string
	Timestamp           time.Time
}

// BillPaymentLegs is the atomic unit of a bill payment: one balance decrement,
// one debit ledger row, and the biller's due amount/date reset.
type BillPaymentLegs struct {
	UserID        string
	FromAccountID string
	BillerID      string
	Amount        *big.Rat
	Currency      string
	TransactionID string
	Description   string
	Memo          string
	Timestamp     time.Time
}

// Store is the persistence contract of the ledger engine. The engine holds no
// state of its own; balances are re-read through the Store immediately before
// every committing operation, and atomicity of the multi-row writes is the
// Store's responsibility.
type Store interface {
	// GetAccountByType returns the first account of the given type for the
	// user along with how many rows matched, so callers can surface latent
	// ambiguity in the data model instead of silently picking a row.
	GetAccountByType(ctx context.Context, userID, accountType string) (*Account, int, error)
	GetAccountByID(ctx context.Context, userID, accountID string) (*Account, error)
	ListAccounts(ctx context.Context, userID string) ([]Account, error)

	ListTransactions(ctx context.Context, userID, accountID string, limit int) ([]Transaction, error)

	FindBillers(ctx context.Context, userID string, filter BillerFilter) ([]Biller, error)
	GetBillerName(ctx context.Context, userID, billerID string) (string, error)
	InsertBiller(ctx context.Context, b *Biller) error
	// UpdateBiller applies the set fields of u and stamps last_updated_ts.
	// It returns the number of rows affected; zero is not an error.
	UpdateBiller(ctx context.Context, userID, billerID string, u BillerUpdate, ts time.Time) (int64, error)

	ApplyTransfer(ctx context.Context, legs TransferLegs) error
	ApplyBillPayment(ctx context.Context, legs BillPaymentLegs) error
}
