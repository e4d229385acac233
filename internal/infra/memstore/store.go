// Package memstore is an in-memory ledger.Store used by tests and by local
// runs without warehouse credentials. All multi-row operations apply under a
// single lock, giving the same all-or-nothing guarantee the warehouse
// transaction provides.
package memstore

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/kkrishnan90/mmt-live-api/internal/ledger"
)

type Store struct {
	mu           sync.Mutex
	accounts     map[string]*ledger.Account // by account_id
	billers      map[string]*ledger.Biller  // by biller_id
	transactions []ledger.Transaction
}

// New creates an empty store.
func New() *Store {
	return &Store{
		accounts: make(map[string]*ledger.Account),
		billers:  make(map[string]*ledger.Biller),
	}
}

// AddAccount seeds an account. Balances are copied so callers cannot mutate
// store state from outside.
func (s *Store) AddAccount(acc ledger.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := acc
	cp.Balance = new(big.Rat).Set(acc.Balance)
	s.accounts[acc.AccountID] = &cp
}

// AddBiller seeds a biller.
func (s *Store) AddBiller(b ledger.Biller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := b
	if b.DueAmount != nil {
		cp.DueAmount = new(big.Rat).Set(b.DueAmount)
	}
	s.billers[b.BillerID] = &cp
}

// Transactions returns a copy of all recorded ledger rows, insertion order.
func (s *Store) Transactions() []ledger.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ledger.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

func copyAccount(acc *ledger.Account) *ledger.Account {
	cp := *acc
	cp.Balance = new(big.Rat).Set(acc.Balance)
	return &cp
}

func (s *Store) GetAccountByType(ctx context.Context, userID, accountType string) (*ledger.Account, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []*ledger.Account
	for _, acc := range s.accounts {
		if acc.UserID == userID && acc.AccountType == accountType {
			matches = append(matches, acc)
		}
	}
	if len(matches) == 0 {
		return nil, 0, ledger.ErrNotFound
	}
	// Deterministic first row: lowest account id wins.
	sort.Slice(matches, func(i, j int) bool { return matches[i].AccountID < matches[j].AccountID })
	return copyAccount(matches[0]), len(matches), nil
}

func (s *Store) GetAccountByID(ctx context.Context, userID, accountID string) (*ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[accountID]
	if !ok || acc.UserID != userID {
		return nil, ledger.ErrNotFound
	}
	return copyAccount(acc), nil
}

func (s *Store) ListAccounts(ctx context.Context, userID string) ([]ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []ledger.Account
	for _, acc := range s.accounts {
		if acc.UserID == userID {
			out = append(out, *copyAccount(acc))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

func (s *Store) ListTransactions(ctx context.Context, userID, accountID string, limit int) ([]ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []ledger.Transaction
	for i := len(s.transactions) - 1; i >= 0 && len(out) < limit; i-- {
		t := s.transactions[i]
		if t.UserID == userID && t.AccountID == accountID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) FindBillers(ctx context.Context, userID string, filter ledger.BillerFilter) ([]ledger.Biller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []ledger.Biller
	for _, b := range s.billers {
		if b.UserID != userID {
			continue
		}
		if filter.ActiveOnly && b.Status != ledger.BillerActive {
			continue
		}
		if filter.BillerType != "" && b.BillerType != filter.BillerType {
			continue
		}
		if filter.PayeeNickname != "" && b.PayeeNickname != filter.PayeeNickname {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BillerName != out[j].BillerName {
			return out[i].BillerName < out[j].BillerName
		}
		return out[i].PayeeNickname < out[j].PayeeNickname
	})
	return out, nil
}

func (s *Store) GetBillerName(ctx context.Context, userID, billerID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.billers[billerID]
	if !ok || b.UserID != userID {
		return "", ledger.ErrNotFound
	}
	return b.BillerName, nil
}

func (s *Store) InsertBiller(ctx context.Context, b *ledger.Biller) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.billers[b.BillerID]; exists {
		return fmt.Errorf("InsertBiller: biller %q already exists", b.BillerID)
	}
	cp := *b
	if b.DueAmount != nil {
		cp.DueAmount = new(big.Rat).Set(b.DueAmount)
	}
	s.billers[b.BillerID] = &cp
	return nil
}

func (s *Store) UpdateBiller(ctx context.Context, userID, billerID string, u ledger.BillerUpdate, ts time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.billers[billerID]
	if !ok || b.UserID != userID {
		return 0, nil
	}
	// Mirror the warehouse semantics: setting every field to its current
	// value still counts as an affected row, except the inactive->inactive
	// status flip which the warehouse reports as zero rows changed.
	if u.Status != nil && *u.Status == b.Status && u.BillerName == nil && u.BillerType == nil &&
		u.AccountNumber == nil && u.PayeeNickname == nil && u.DefaultPaymentAccountID == nil &&
		u.DueAmount == nil && u.DueDate == nil {
		return 0, nil
	}

	if u.BillerName != nil {
		b.BillerName = *u.BillerName
	}
	if u.BillerType != nil {
		b.BillerType = *u.BillerType
	}
	if u.AccountNumber != nil {
		b.AccountNumber = *u.AccountNumber
	}
	if u.PayeeNickname != nil {
		b.PayeeNickname = *u.PayeeNickname
	}
	if u.DefaultPaymentAccountID != nil {
		b.DefaultPaymentAccountID = *u.DefaultPaymentAccountID
	}
	if u.Status != nil {
		b.Status = *u.Status
	}
	if u.DueAmount != nil {
		b.DueAmount = new(big.Rat).Set(u.DueAmount)
	}
	if u.DueDate != nil {
		b.DueDate = *u.DueDate
		b.HasDueDate = true
	}
	b.LastUpdatedTS = ts
	return 1, nil
}

func (s *Store) ApplyTransfer(ctx context.Context, legs ledger.TransferLegs) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.accounts[legs.FromAccountID]
	if !ok || from.UserID != legs.UserID {
		return fmt.Errorf("ApplyTransfer: sender account %q: %w", legs.FromAccountID, ledger.ErrNotFound)
	}
	to, ok := s.accounts[legs.ToAccountID]
	if !ok || to.UserID != legs.UserID {
		return fmt.Errorf("ApplyTransfer: recipient account %q: %w", legs.ToAccountID, ledger.ErrNotFound)
	}
	if from.Balance.Cmp(legs.Amount) < 0 {
		return fmt.Errorf("ApplyTransfer: balance %s below amount %s", from.Balance.FloatString(2), legs.Amount.FloatString(2))
	}

	from.Balance.Sub(from.Balance, legs.Amount)
	to.Balance.Add(to.Balance, legs.Amount)
	s.transactions = append(s.transactions,
		ledger.Transaction{
			TransactionID: legs.DebitTransactionID,
			AccountID:     legs.FromAccountID,
			UserID:        legs.UserID,
			Date:          legs.Timestamp,
			Description:   legs.DebitDescription,
			Amount:        new(big.Rat).Neg(legs.Amount),
			Currency:      legs.Currency,
			Type:          ledger.TxnTransferDebit,
			Memo:          legs.Memo,
		},
		ledger.Transaction{
			TransactionID: legs.CreditTransactionID,
			AccountID:     legs.ToAccountID,
			UserID:        legs.UserID,
			Date:          legs.Timestamp,
			Description:   legs.CreditDescription,
			Amount:        new(big.Rat).Set(legs.Amount),
			Currency:      legs.Currency,
			Type:          ledger.TxnTransferCredit,
			Memo:          legs.Memo,
		},
	)
	return nil
}

func (s *Store) ApplyBillPayment(ctx context.Context, legs ledger.BillPaymentLegs) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.accounts[legs.FromAccountID]
	if !ok || from.UserID != legs.UserID {
		return fmt.Errorf("ApplyBillPayment: account %q: %w", legs.FromAccountID, ledger.ErrNotFound)
	}
	b, ok := s.billers[legs.BillerID]
	if !ok || b.UserID != legs.UserID {
		return fmt.Errorf("ApplyBillPayment: biller %q: %w", legs.BillerID, ledger.ErrNotFound)
	}
	if from.Balance.Cmp(legs.Amount) < 0 {
		return fmt.Errorf("ApplyBillPayment: balance %s below amount %s", from.Balance.FloatString(2), legs.Amount.FloatString(2))
	}

	from.Balance.Sub(from.Balance, legs.Amount)
	s.transactions = append(s.transactions, ledger.Transaction{
		TransactionID: legs.TransactionID,
		AccountID:     legs.FromAccountID,
		UserID:        legs.UserID,
		Date:          legs.Timestamp,
		Description:   legs.Description,
		Amount:        new(big.Rat).Neg(legs.Amount),
		Currency:      legs.Currency,
		Type:          ledger.TxnBillPayment,
		Memo:          legs.Memo,
	})
	b.DueAmount = new(big.Rat)
	b.DueDate = civilDateOf(legs.Timestamp)
	b.HasDueDate = true
	b.LastUpdatedTS = legs.Timestamp
	return nil
}
