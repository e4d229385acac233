package ledger_test

import (
	"context"
	"testing"

	"github.com/kkrishnan90/mmt-live-api/internal/ledger"
)

func TestResolveAccount(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantID   string
		wantType string
	}{
		{"exact nickname", "My Salary Account", "acc_chk_" + testUser, "checking"},
		{"lowercase nickname", "my salary account", "acc_chk_" + testUser, "checking"},
		{"nickname words", "salary account", "acc_chk_" + testUser, "checking"},
		{"other nickname", "emergency fund", "acc_sav_" + testUser, "savings"},
		{"account type", "savings", "acc_sav_" + testUser, "savings"},
		{"type in a phrase", "my checking account please", "acc_chk_" + testUser, "checking"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, _ := newTestEngine(t)
			got := eng.ResolveAccount(context.Background(), testUser, tt.query)
			if got.Status != ledger.StatusSuccess {
				t.Fatalf("status = %s, want SUCCESS (message: %s)", got.Status, got.Message)
			}
			if got.AccountID != tt.wantID {
				t.Errorf("AccountID = %q, want %q", got.AccountID, tt.wantID)
			}
			if got.AccountType != tt.wantType {
				t.Errorf("AccountType = %q, want %q", got.AccountType, tt.wantType)
			}
		})
	}
}

func TestResolveAccountNoMatch(t *testing.T) {
	eng, _ := newTestEngine(t)

	got := eng.ResolveAccount(context.Background(), testUser, "mortgage escrow")
	if got.Status != ledger.StatusAccountNotFound {
		t.Fatalf("status = %s, want %s", got.Status, ledger.StatusAccountNotFound)
	}
}

func TestResolveAccountNoAccounts(t *testing.T) {
	eng, _ := newTestEngine(t)

	got := eng.ResolveAccount(context.Background(), "someone_else", "checking")
	if got.Status != ledger.StatusAccountNotFound {
		t.Fatalf("status = %s, want %s", got.Status, ledger.StatusAccountNotFound)
	}
}

func TestResolveAccountAmbiguous(t *testing.T) {
	eng, store := newTestEngine(t)
	// Neither nickname contains the query word, so both checking accounts
	// score identically on the type match and no candidate clears the margin.
	store.AddAccount(ledger.Account{
		AccountID:       "acc_chk2_" + testUser,
		UserID:          testUser,
		AccountType:     "checking",
		AccountNickname: "Household Bills",
		Balance:         ledger.MoneyFromFloat(300),
		Currency:        "USD",
	})

	got := eng.ResolveAccount(context.Background(), testUser, "checking")
	if got.Status != ledger.StatusAmbiguousAccount {
		t.Fatalf("status = %s, want %s", got.Status, ledger.StatusAmbiguousAccount)
	}
	if len(got.Options) != 2 {
		t.Fatalf("offered %d options, want 2", len(got.Options))
	}
	for _, opt := range got.Options {
		if opt.AccountType != "checking" {
			t.Errorf("option %s has type %q, want checking", opt.AccountID, opt.AccountType)
		}
		if opt.Score <= 0 {
			t.Errorf("option %s has score %d, want positive", opt.AccountID, opt.Score)
		}
	}
}

func TestResolveAccountNicknameLeadWins(t *testing.T) {
	eng, store := newTestEngine(t)
	// The query word inside the nickname outscores a bare type match by more
	// than the margin, so this resolves without asking the user.
	store.AddAccount(ledger.Account{
		AccountID:       "acc_chk2_" + testUser,
		UserID:          testUser,
		AccountType:     "checking",
		AccountNickname: "Household Checking",
		Balance:         ledger.MoneyFromFloat(300),
		Currency:        "USD",
	})

	got := eng.ResolveAccount(context.Background(), testUser, "checking")
	if got.Status != ledger.StatusSuccess {
		t.Fatalf("status = %s, want SUCCESS (message: %s)", got.Status, got.Message)
	}
	if got.AccountID != "acc_chk2_"+testUser {
		t.Errorf("AccountID = %q, want the nickname-matching account", got.AccountID)
	}
}

func TestResolveAccountAmbiguousCapsOptions(t *testing.T) {
	eng, store := newTestEngine(t)
	for _, acc := range []struct{ id, nickname string }{
		{"acc_chk2_" + testUser, "Household Checking"},
		{"acc_chk3_" + testUser, "Travel Checking"},
		{"acc_chk4_" + testUser, "Spare Checking"},
	} {
		store.AddAccount(ledger.Account{
			AccountID:       acc.id,
			UserID:          testUser,
			AccountType:     "checking",
			AccountNickname: acc.nickname,
			Balance:         ledger.MoneyFromFloat(100),
			Currency:        "USD",
		})
	}

	got := eng.ResolveAccount(context.Background(), testUser, "checking")
	if got.Status != ledger.StatusAmbiguousAccount {
		t.Fatalf("status = %s, want %s", got.Status, ledger.StatusAmbiguousAccount)
	}
	if len(got.Options) != 3 {
		t.Errorf("offered %d options, want the cap of 3", len(got.Options))
	}
}

func TestResolveAccountDeterministic(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	first := eng.ResolveAccount(ctx, testUser, "salary")
	for i := 0; i < 5; i++ {
		got := eng.ResolveAccount(ctx, testUser, "salary")
		if got.Status != first.Status || got.AccountID != first.AccountID {
			t.Fatalf("run %d resolved to %s/%s, first run was %s/%s", i, got.Status, got.AccountID, first.Status, first.AccountID)
		}
	}
}
