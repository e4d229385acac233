// Package ledger implements the account directory, biller directory, transfer
// engine and natural-language account resolver on top of a transactional
// Store. Every public operation returns a typed result with a closed status
// vocabulary and emits one structured record to the diagnostic sink; no
// operation ever surfaces a raw store error to its caller.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kkrishnan90/mmt-live-api/internal/audit"
)

// Engine coordinates all ledger operations. It holds no mutable state between
// calls other than the injected diagnostic sink, which is safe for concurrent
// append.
type Engine struct {
	store Store
	sink  *audit.Sink
	log   zerolog.Logger
}

// NewEngine wires an engine to its store and diagnostic sink.
func NewEngine(store Store, sink *audit.Sink, log zerolog.Logger) *Engine {
	return &Engine{store: store, sink: sink, log: log}
}

// record emits the per-operation diagnostic entry to the sink, the structured
// log, and the operation counter. Records for failures caught before any store
// access carry no effective action.
func (e *Engine) record(op string, params map[string]any, status Status, summary, errMsg string) {
	e.recordAction(op, params, "", status, summary, errMsg)
}

// recordAction is record with the effective store action the operation reached,
// stamped on the diagnostic entry for records that follow a store call.
func (e *Engine) recordAction(op string, params map[string]any, action string, status Status, summary, errMsg string) {
	e.sink.Append(audit.Record{
		Operation:  op,
		Parameters: params,
		Query:      action,
		Status:     string(status),
		Summary:    summary,
		Error:      errMsg,
	})
	operationsTotal.WithLabelValues(op, string(status)).Inc()

	ev := e.log.Info()
	if status.IsError() {
		ev = e.log.Error()
	}
	ev.Str("operation", op).Str("status", string(status))
	if action != "" {
		ev = ev.Str("action", action)
	}
	if summary != "" {
		ev = ev.Str("summary", summary)
	}
	if errMsg != "" {
		ev = ev.Str("error_message", errMsg)
	}
	ev.Interface("parameters", params).Msg("ledger operation")
}

// Effective store actions stamped on diagnostic records once an operation has
// reached the store. Validation failures caught beforehand carry none.
const (
	actionReadAccountByID   = "read account row by (user_id, account_id)"
	actionReadAccountByType = "read account row by (user_id, account_type)"
	actionListAccounts      = "read all account rows for user_id"
	actionListTransactions  = "read ledger rows for (user_id, account_id) newest first"
	actionListBillers       = "read registered biller rows for user_id"
	actionFindBillers       = "read active biller rows filtered by type and nickname"
	actionReadBillerName    = "read biller name by (user_id, biller_id)"
	actionInsertBiller      = "insert biller row"
	actionUpdateBiller      = "update biller row fields, stamp last_updated_ts"
	actionRemoveBiller      = "flip biller row status to inactive"
	actionApplyTransfer     = "atomic transfer: debit and credit balance updates plus two ledger inserts"
	actionApplyBillPayment  = "atomic bill payment: balance update, ledger insert, biller due reset"
)

// storeStatus maps a store error onto the status vocabulary used for lookup
// failures.
func storeStatus(err error) Status {
	switch {
	case errors.Is(err, ErrNotInitialized):
		return StatusClientNotInitialized
	case errors.Is(err, ErrNotFound):
		return StatusAccountNotFound
	default:
		return StatusQueryFailed
	}
}

// InitiateTransferCheck is the non-committing quote operation: it resolves
// both accounts by type and reports whether the transfer would succeed. A
// sufficient-funds answer reserves nothing; ExecuteTransfer re-validates.
func (e *Engine) InitiateTransferCheck(ctx context.Context, userID, fromType, toType string, amount float64) TransferCheckResult {
	const op = "initiate_fund_transfer_check"
	params := map[string]any{
		"from_account_type": fromType, "to_account_type": toType,
		"amount": amount, "user_id": userID,
	}

	amt := MoneyFromFloat(amount)
	if !IsPositive(amt) {
		msg := "Transfer amount must be a positive number."
		e.record(op, params, StatusInvalidAmount, "", msg)
		return TransferCheckResult{Status: StatusInvalidAmount, Message: msg}
	}

	from := e.GetAccount(ctx, userID, fromType)
	if from.Status != StatusSuccess {
		msg := fmt.Sprintf("From account (%q): %s", fromType, from.Message)
		e.recordAction(op, params, actionReadAccountByType, from.Status, "", msg)
		return TransferCheckResult{Status: from.Status, Message: msg}
	}

	to := e.GetAccount(ctx, userID, toType)
	if to.Status != StatusSuccess {
		msg := fmt.Sprintf("To account (%q): %s", toType, to.Message)
		e.recordAction(op, params, actionReadAccountByType, to.Status, "", msg)
		return TransferCheckResult{Status: to.Status, Message: msg}
	}

	if from.AccountID == to.AccountID {
		msg := "Cannot transfer funds to the same account type, resulting in the same account ID."
		e.recordAction(op, params, actionReadAccountByType, StatusSameAccount, "", msg)
		return TransferCheckResult{Status: StatusSameAccount, Message: msg}
	}

	if from.Balance.Cmp(amt) >= 0 {
		e.recordAction(op, params, actionReadAccountByType, StatusSufficientFunds,
			fmt.Sprintf("Sufficient funds. From: %s, To: %s, Amount: %s", from.AccountID, to.AccountID, MoneyString(amt)), "")
		return TransferCheckResult{
			Status:         StatusSufficientFunds,
			FromAccountID:  from.AccountID,
			ToAccountID:    to.AccountID,
			FromBalance:    MoneyFloat(from.Balance),
			TransferAmount: MoneyFloat(amt),
			Currency:       from.Currency,
		}
	}

	e.recordAction(op, params, actionReadAccountByType, StatusInsufficientFunds, "",
		fmt.Sprintf("Insufficient funds. Has: %s, Needs: %s", MoneyString(from.Balance), MoneyString(amt)))
	return TransferCheckResult{
		Status:          StatusInsufficientFunds,
		FromAccountID:   from.AccountID,
		ToAccountID:     to.AccountID,
		CurrentBalance:  MoneyFloat(from.Balance),
		RequestedAmount: MoneyFloat(amt),
		Currency:        from.Currency,
	}
}

// ExecuteTransfer commits a fund transfer as one atomic unit: both balance
// updates and both ledger rows apply together or not at all. Accounts are
// re-resolved by id so a stale quote cannot skip validation.
func (e *Engine) ExecuteTransfer(ctx context.Context, userID, fromAccountID, toAccountID string, amount float64, currency, memo string) TransferResult {
	const op = "execute_fund_transfer"
	params := map[string]any{
		"from_account_id": fromAccountID, "to_account_id": toAccountID,
		"amount": amount, "currency": currency, "memo": memo, "user_id": userID,
	}

	amt := MoneyFromFloat(amount)
	if !IsPositive(amt) {
		msg := "Transfer amount must be a positive number."
		e.record(op, params, StatusInvalidAmount, "", msg)
		return TransferResult{Status: StatusInvalidAmount, Message: msg}
	}
	if fromAccountID == toAccountID {
		msg := "Cannot transfer funds to the same account."
		e.record(op, params, StatusSameAccount, "", msg)
		return TransferResult{Status: StatusSameAccount, Message: msg}
	}

	from, err := e.store.GetAccountByID(ctx, userID, fromAccountID)
	if err != nil {
		st := storeStatus(err)
		msg := fmt.Sprintf("Sender account %q not found or error.", fromAccountID)
		e.recordAction(op, params, actionReadAccountByID, st, "", fmt.Sprintf("%s: %v", msg, err))
		return TransferResult{Status: st, Message: msg}
	}
	to, err := e.store.GetAccountByID(ctx, userID, toAccountID)
	if err != nil {
		st := storeStatus(err)
		msg := fmt.Sprintf("Recipient account %q not found or error.", toAccountID)
		e.recordAction(op, params, actionReadAccountByID, st, "", fmt.Sprintf("%s: %v", msg, err))
		return TransferResult{Status: st, Message: msg}
	}

	if from.Currency != currency || to.Currency != currency {
		msg := fmt.Sprintf("Currency mismatch. Transfer currency: %s, sender account currency: %s, recipient account currency: %s.",
			currency, from.Currency, to.Currency)
		e.recordAction(op, params, actionReadAccountByID, StatusCurrencyMismatch, "", msg)
		return TransferResult{Status: StatusCurrencyMismatch, Message: msg}
	}

	if from.Balance.Cmp(amt) < 0 {
		msg := fmt.Sprintf("Insufficient funds in sender account %q. Has: %s %s, Needs: %s %s",
			fromAccountID, MoneyString(from.Balance), currency, MoneyString(amt), currency)
		e.recordAction(op, params, actionReadAccountByID, StatusInsufficientErr, "", msg)
		return TransferResult{
			Status:          StatusInsufficientErr,
			Message:         msg,
			FromAccountID:   fromAccountID,
			ToAccountID:     toAccountID,
			CurrentBalance:  MoneyFloat(from.Balance),
			RequestedAmount: MoneyFloat(amt),
			Currency:        currency,
		}
	}

	baseID := "txn_" + uuid.NewString()
	legs := TransferLegs{
		UserID:              userID,
		FromAccountID:       fromAccountID,
		ToAccountID:         toAccountID,
		Amount:              amt,
		Currency:            currency,
		DebitTransactionID:  baseID + "_D",
		CreditTransactionID: baseID + "_C",
		DebitDescription:    fmt.Sprintf("Transfer to account %s", toAccountID),
		CreditDescription:   fmt.Sprintf("Transfer from account %s", fromAccountID),
		Memo:                memo,
		Timestamp:           time.Now().UTC(),
	}

	if err := e.store.ApplyTransfer(ctx, legs); err != nil {
		// The generic message keeps infrastructure detail out of the caller's
		// hands; the full error goes to the sink only.
		st := StatusTransactionFailed
		if errors.Is(err, ErrNotInitialized) {
			st = StatusClientNotInitialized
		}
		e.recordAction(op, params, actionApplyTransfer, st, "", err.Error())
		return TransferResult{Status: st, Message: "Fund transfer failed during execution."}
	}

	cents := new(big.Rat).Mul(amt, big.NewRat(100, 1))
	f, _ := cents.Float64()
	transferAmountCents.Add(f)

	summary := fmt.Sprintf("Fund transfer of %s %s from %s to %s completed successfully. Transaction ID: %s",
		MoneyString(amt), currency, fromAccountID, toAccountID, baseID)
	e.recordAction(op, params, actionApplyTransfer, StatusSuccess, summary, "")
	return TransferResult{
		Status:        StatusSuccess,
		Message:       summary,
		TransactionID: baseID,
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
	}
}

// PayBill commits a bill payment: one balance decrement, one debit ledger row
// and the biller's due reset, all atomically.
func (e *Engine) PayBill(ctx context.Context, userID, payeeID string, amount float64, fromAccountID string) BillPaymentResult {
	const op = "pay_bill"
	params := map[string]any{
		"payee_id": payeeID, "amount": amount,
		"from_account_id": fromAccountID, "user_id": userID,
	}

	amt := MoneyFromFloat(amount)
	if !IsPositive(amt) {
		msg := "Payment amount must be a positive number."
		e.record(op, params, StatusInvalidAmount, "", msg)
		return BillPaymentResult{Status: StatusInvalidAmount, Message: msg}
	}

	from, err := e.store.GetAccountByID(ctx, userID, fromAccountID)
	if err != nil {
		st := storeStatus(err)
		msg := fmt.Sprintf("Error with payment account %q.", fromAccountID)
		e.recordAction(op, params, actionReadAccountByID, st, "", fmt.Sprintf("%s: %v", msg, err))
		return BillPaymentResult{Status: st, Message: msg}
	}

	if from.Balance.Cmp(amt) < 0 {
		msg := fmt.Sprintf("Insufficient funds in account %s. Has: %s %s, Needs: %s %s",
			fromAccountID, MoneyString(from.Balance), from.Currency, MoneyString(amt), from.Currency)
		e.recordAction(op, params, actionReadAccountByID, StatusInsufficientFunds, "", msg)
		return BillPaymentResult{
			Status:          StatusInsufficientFunds,
			Message:         msg,
			FromAccountID:   fromAccountID,
			PayeeID:         payeeID,
			CurrentBalance:  MoneyFloat(from.Balance),
			RequestedAmount: MoneyFloat(amt),
			Currency:        from.Currency,
		}
	}

	billerName, err := e.store.GetBillerName(ctx, userID, payeeID)
	if err != nil {
		st := StatusBillerNotFound
		if !errors.Is(err, ErrNotFound) {
			st = storeStatus(err)
		}
		msg := fmt.Sprintf("Biller with ID %q not found for user %q.", payeeID, userID)
		e.recordAction(op, params, actionReadBillerName, st, "", fmt.Sprintf("%s: %v", msg, err))
		return BillPaymentResult{Status: st, Message: msg}
	}

	confirmation := "BP" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	txnID := "txn_bill_" + uuid.NewString()
	legs := BillPaymentLegs{
		UserID:        userID,
		FromAccountID: fromAccountID,
		BillerID:      payeeID,
		Amount:        amt,
		Currency:      from.Currency,
		TransactionID: txnID,
		Description:   fmt.Sprintf("Bill Payment to %s (Biller ID: %s)", billerName, payeeID),
		Memo:          fmt.Sprintf("Payment for bill %s", payeeID),
		Timestamp:     time.Now().UTC(),
	}

	if err := e.store.ApplyBillPayment(ctx, legs); err != nil {
		st := StatusTransactionFailed
		if errors.Is(err, ErrNotInitialized) {
			st = StatusClientNotInitialized
		}
		e.recordAction(op, params, actionApplyBillPayment, st, "", err.Error())
		return BillPaymentResult{Status: st, Message: "Bill payment failed during execution."}
	}

	summary := fmt.Sprintf("Bill payment of %s %s to %s (Biller ID: %s) from account %s was successful. Confirmation: %s.",
		MoneyString(amt), from.Currency, billerName, payeeID, fromAccountID, confirmation)
	e.recordAction(op, params, actionApplyBillPayment, StatusSuccess, summary, "")
	return BillPaymentResult{
		Status:             StatusSuccess,
		Message:            summary,
		ConfirmationNumber: confirmation,
		TransactionID:      txnID,
		BillerName:         billerName,
		AmountPaid:         MoneyFloat(amt),
		Currency:           from.Currency,
		FromAccountID:      fromAccountID,
	}
}
