package ledger_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kkrishnan90/mmt-live-api/internal/ledger"
)

// Tool responses reach the model as marshaled result payloads, so the
// embedded domain types must serialize with snake_case keys and decimal
// amounts, never Go field names or rational-number strings.

func TestAccountsResultWireFormat(t *testing.T) {
	eng, _ := newTestEngine(t)

	raw, err := json.Marshal(eng.ListAccounts(context.Background(), testUser))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Status   string           `json:"status"`
		Accounts []map[string]any `json:"accounts"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Accounts) != 2 {
		t.Fatalf("accounts = %d, want 2", len(decoded.Accounts))
	}

	var checking map[string]any
	for _, acc := range decoded.Accounts {
		if acc["account_id"] == "acc_chk_"+testUser {
			checking = acc
		}
	}
	if checking == nil {
		t.Fatalf("no account_id key with acc_chk_%s in %s", testUser, raw)
	}
	if checking["balance"] != 1250.75 {
		t.Errorf("balance = %v (%T), want the decimal 1250.75", checking["balance"], checking["balance"])
	}
	if checking["account_name"] != "checking" || checking["account_type"] != "checking" {
		t.Errorf("account_name/account_type = %v/%v, want checking/checking", checking["account_name"], checking["account_type"])
	}
	if checking["account_nickname"] != "My Salary Account" {
		t.Errorf("account_nickname = %v, want My Salary Account", checking["account_nickname"])
	}
	for _, goCased := range []string{"AccountID", "Balance", "UserID"} {
		if _, present := checking[goCased]; present {
			t.Errorf("wire form leaks Go field name %q", goCased)
		}
	}
}

func TestTransactionsResultWireFormat(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	if res := eng.ExecuteTransfer(ctx, testUser, "acc_chk_"+testUser, "acc_sav_"+testUser, 120.50, "USD", ""); res.Status != ledger.StatusSuccess {
		t.Fatalf("transfer: status = %s", res.Status)
	}

	raw, err := json.Marshal(eng.TransactionHistory(ctx, testUser, "checking", 5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Transactions []map[string]any `json:"transactions"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(decoded.Transactions))
	}

	txn := decoded.Transactions[0]
	if txn["amount"] != -120.50 {
		t.Errorf("amount = %v (%T), want the decimal -120.5", txn["amount"], txn["amount"])
	}
	if txn["type"] != "transfer_debit" {
		t.Errorf("type = %v, want transfer_debit", txn["type"])
	}
	if txn["transaction_id"] == nil || txn["date"] == nil || txn["description"] == nil {
		t.Errorf("missing snake_case keys in %s", raw)
	}
}

func TestBillersResultWireFormat(t *testing.T) {
	eng, _ := newTestEngine(t)

	raw, err := json.Marshal(eng.ListBillers(context.Background(), testUser))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Billers []map[string]any `json:"billers"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Billers) != 2 {
		t.Fatalf("billers = %d, want 2", len(decoded.Billers))
	}

	var elec map[string]any
	for _, b := range decoded.Billers {
		if b["biller_id"] == "biller_elec_"+testUser {
			elec = b
		}
	}
	if elec == nil {
		t.Fatalf("no biller_id key with biller_elec_%s in %s", testUser, raw)
	}
	if elec["due_amount"] != 120.50 {
		t.Errorf("due_amount = %v (%T), want the decimal 120.5", elec["due_amount"], elec["due_amount"])
	}
	if elec["biller_name"] != "City Power & Light" || elec["payee_nickname"] != "Home Electricity" {
		t.Errorf("biller_name/payee_nickname = %v/%v", elec["biller_name"], elec["payee_nickname"])
	}
	if due, _ := elec["due_date"].(string); len(due) != len("2006-01-02") {
		t.Errorf("due_date = %v, want YYYY-MM-DD", elec["due_date"])
	}
}
