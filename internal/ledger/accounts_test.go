package ledger_test

import (
	"context"
	"testing"

	"github.com/kkrishnan90/mmt-live-api/internal/ledger"
)

func TestGetAccount(t *testing.T) {
	eng, _ := newTestEngine(t)

	got := eng.GetAccount(context.Background(), testUser, "checking")
	if got.Status != ledger.StatusSuccess {
		t.Fatalf("status = %s, want SUCCESS (message: %s)", got.Status, got.Message)
	}
	if got.AccountID != "acc_chk_"+testUser {
		t.Errorf("AccountID = %q, want acc_chk_%s", got.AccountID, testUser)
	}
	if got.BalanceF != 1250.75 {
		t.Errorf("BalanceF = %v, want 1250.75", got.BalanceF)
	}
	if got.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", got.Currency)
	}
}

func TestGetAccountNotFound(t *testing.T) {
	eng, _ := newTestEngine(t)

	got := eng.GetAccount(context.Background(), testUser, "brokerage")
	if got.Status != ledger.StatusAccountNotFound {
		t.Fatalf("status = %s, want %s", got.Status, ledger.StatusAccountNotFound)
	}
}

func TestGetAccountDuplicateTypeFirstRowWins(t *testing.T) {
	eng, store := newTestEngine(t)
	store.AddAccount(ledger.Account{
		AccountID:   "acc_xtra_" + testUser,
		UserID:      testUser,
		AccountType: "checking",
		Balance:     ledger.MoneyFromFloat(10),
		Currency:    "USD",
	})

	got := eng.GetAccount(context.Background(), testUser, "checking")
	if got.Status != ledger.StatusSuccess {
		t.Fatalf("status = %s, want SUCCESS", got.Status)
	}
	// Lowest account id is the deterministic winner.
	if got.AccountID != "acc_chk_"+testUser {
		t.Errorf("AccountID = %q, want acc_chk_%s", got.AccountID, testUser)
	}
}

func TestGetAccountByID(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	got := eng.GetAccountByID(ctx, testUser, "acc_sav_"+testUser)
	if got.Status != ledger.StatusSuccess {
		t.Fatalf("status = %s, want SUCCESS (message: %s)", got.Status, got.Message)
	}
	if got.AccountType != "savings" || got.BalanceF != 8300.00 {
		t.Errorf("payload = %s / %v, want savings / 8300", got.AccountType, got.BalanceF)
	}

	missing := eng.GetAccountByID(ctx, testUser, "acc_missing")
	if missing.Status != ledger.StatusAccountNotFound {
		t.Errorf("missing id: status = %s, want %s", missing.Status, ledger.StatusAccountNotFound)
	}

	// Another user's account id must not resolve.
	other := eng.GetAccountByID(ctx, "someone_else", "acc_sav_"+testUser)
	if other.Status != ledger.StatusAccountNotFound {
		t.Errorf("foreign user: status = %s, want %s", other.Status, ledger.StatusAccountNotFound)
	}
}

func TestListAccounts(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	got := eng.ListAccounts(ctx, testUser)
	if got.Status != ledger.StatusSuccess {
		t.Fatalf("status = %s, want SUCCESS", got.Status)
	}
	if len(got.Accounts) != 2 {
		t.Errorf("listed %d accounts, want 2", len(got.Accounts))
	}

	none := eng.ListAccounts(ctx, "someone_else")
	if none.Status != ledger.StatusNoAccountsFound {
		t.Errorf("empty user: status = %s, want %s", none.Status, ledger.StatusNoAccountsFound)
	}
}

func TestTransactionHistory(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	empty := eng.TransactionHistory(ctx, testUser, "checking", 5)
	if empty.Status != ledger.StatusNoTransactionsFound {
		t.Fatalf("fresh account: status = %s, want %s", empty.Status, ledger.StatusNoTransactionsFound)
	}

	// Seven transfers make seven debit rows against checking.
	for i := 0; i < 7; i++ {
		res := eng.ExecuteTransfer(ctx, testUser, "acc_chk_"+testUser, "acc_sav_"+testUser, 1.00, "USD", "")
		if res.Status != ledger.StatusSuccess {
			t.Fatalf("transfer %d: status = %s", i, res.Status)
		}
	}

	got := eng.TransactionHistory(ctx, testUser, "checking", 0)
	if got.Status != ledger.StatusSuccess {
		t.Fatalf("status = %s, want SUCCESS (message: %s)", got.Status, got.Message)
	}
	if len(got.Transactions) != 5 {
		t.Errorf("default limit returned %d rows, want 5", len(got.Transactions))
	}
	for _, txn := range got.Transactions {
		if txn.AccountID != "acc_chk_"+testUser {
			t.Errorf("row %s belongs to %s, want the checking account only", txn.TransactionID, txn.AccountID)
		}
		if txn.Type != ledger.TxnTransferDebit {
			t.Errorf("row %s has type %s, want transfer_debit", txn.TransactionID, txn.Type)
		}
	}

	all := eng.TransactionHistory(ctx, testUser, "checking", 50)
	if len(all.Transactions) != 7 {
		t.Errorf("limit 50 returned %d rows, want 7", len(all.Transactions))
	}

	missing := eng.TransactionHistory(ctx, testUser, "brokerage", 5)
	if missing.Status != ledger.StatusAccountNotFound {
		t.Errorf("unknown type: status = %s, want %s", missing.Status, ledger.StatusAccountNotFound)
	}
}
