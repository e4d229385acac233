package ledger

import (
	"context"
	"errors"
	"fmt"
)

// GetAccount resolves an account by type for the user. When more than one row
// matches, the store's deterministic first row wins and a warning diagnostic
// is emitted; account type is not unique per user in the data model.
func (e *Engine) GetAccount(ctx context.Context, userID, accountType string) AccountResult {
	const op = "get_account_details"
	params := map[string]any{"account_type": accountType, "user_id": userID}

	acc, matched, err := e.store.GetAccountByType(ctx, userID, accountType)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			msg := fmt.Sprintf("Account type %q not found for user %q.", accountType, userID)
			e.recordAction(op, params, actionReadAccountByType, StatusAccountNotFound, "", msg)
			return AccountResult{Status: StatusAccountNotFound, Message: msg}
		}
		st := storeStatus(err)
		e.recordAction(op, params, actionReadAccountByType, st, "", err.Error())
		return AccountResult{Status: st, Message: "Failed to look up account."}
	}

	if matched > 1 {
		e.log.Warn().
			Str("account_type", accountType).
			Str("user_id", userID).
			Int("matched", matched).
			Msg("Multiple accounts share one type; first row wins")
	}

	e.recordAction(op, params, actionReadAccountByType, StatusSuccess, fmt.Sprintf("Account found: %s", acc.AccountID), "")
	return AccountResult{
		Status:      StatusSuccess,
		AccountID:   acc.AccountID,
		AccountType: acc.AccountType,
		Balance:     acc.Balance,
		BalanceF:    MoneyFloat(acc.Balance),
		Currency:    acc.Currency,
	}
}

// GetAccountByID resolves an account by its id for the user.
func (e *Engine) GetAccountByID(ctx context.Context, userID, accountID string) AccountResult {
	const op = "get_account_balance_by_id"
	params := map[string]any{"account_id": accountID, "user_id": userID}

	acc, err := e.store.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			msg := fmt.Sprintf("Account ID %q not found for user %q.", accountID, userID)
			e.recordAction(op, params, actionReadAccountByID, StatusAccountNotFound, "", msg)
			return AccountResult{Status: StatusAccountNotFound, Message: msg}
		}
		st := storeStatus(err)
		e.recordAction(op, params, actionReadAccountByID, st, "", err.Error())
		return AccountResult{Status: st, Message: "Failed to look up account."}
	}

	e.recordAction(op, params, actionReadAccountByID, StatusSuccess, fmt.Sprintf("Balance found for account %s.", accountID), "")
	return AccountResult{
		Status:      StatusSuccess,
		AccountID:   acc.AccountID,
		AccountType: acc.AccountType,
		Balance:     acc.Balance,
		BalanceF:    MoneyFloat(acc.Balance),
		Currency:    acc.Currency,
	}
}

// ListAccounts returns every account for the user. An empty result is the
// distinct NO_ACCOUNTS_FOUND outcome, not a bare empty success.
func (e *Engine) ListAccounts(ctx context.Context, userID string) AccountsResult {
	const op = "get_accounts_for_user"
	params := map[string]any{"user_id": userID}

	accounts, err := e.store.ListAccounts(ctx, userID)
	if err != nil {
		st := storeStatus(err)
		e.recordAction(op, params, actionListAccounts, st, "", err.Error())
		return AccountsResult{Status: st, Message: "Failed to list accounts."}
	}
	if len(accounts) == 0 {
		msg := fmt.Sprintf("No accounts found for user %s.", userID)
		e.recordAction(op, params, actionListAccounts, StatusNoAccountsFound, msg, "")
		return AccountsResult{Status: StatusNoAccountsFound, Message: msg}
	}

	e.recordAction(op, params, actionListAccounts, StatusSuccess, fmt.Sprintf("Retrieved %d account(s) for user %s.", len(accounts), userID), "")
	return AccountsResult{Status: StatusSuccess, Accounts: accounts}
}

// TransactionHistory returns the most recent transactions for an account
// resolved by type.
func (e *Engine) TransactionHistory(ctx context.Context, userID, accountType string, limit int) TransactionsResult {
	const op = "get_transaction_history"
	params := map[string]any{"account_type": accountType, "limit": limit, "user_id": userID}

	acc := e.GetAccount(ctx, userID, accountType)
	if acc.Status != StatusSuccess {
		e.recordAction(op, params, actionReadAccountByType, acc.Status, "", fmt.Sprintf("Failed to get account details for %s: %s", accountType, acc.Message))
		return TransactionsResult{Status: acc.Status, Message: acc.Message}
	}

	if limit <= 0 {
		limit = 5
	}
	txns, err := e.store.ListTransactions(ctx, userID, acc.AccountID, limit)
	if err != nil {
		st := storeStatus(err)
		e.recordAction(op, params, actionListTransactions, st, "", err.Error())
		return TransactionsResult{Status: st, Message: "Failed to fetch transaction history."}
	}
	if len(txns) == 0 {
		msg := fmt.Sprintf("No transactions found for account %s (type: %s).", acc.AccountID, accountType)
		e.recordAction(op, params, actionListTransactions, StatusNoTransactionsFound, msg, "")
		return TransactionsResult{Status: StatusNoTransactionsFound, Message: msg}
	}

	e.recordAction(op, params, actionListTransactions, StatusSuccess, fmt.Sprintf("Retrieved %d transaction(s).", len(txns)), "")
	return TransactionsResult{Status: StatusSuccess, Transactions: txns}
}
