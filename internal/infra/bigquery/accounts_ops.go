package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/kkrishnan90/mmt-live-api/internal/ledger"
)

// GetAccountByType returns the first account of the given type plus the
// number of rows that matched. Ordering by account_id makes "first row wins"
// deterministic; account type is not unique per user in this schema.
func (r *Repository) GetAccountByType(ctx context.Context, userID, accountType string) (*ledger.Account, int, error) {
	if err := r.ready(); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT
			account_id,
			user_id,
			account_type,
			account_nickname,
			balance,
			currency
		FROM %s
		WHERE user_id = @user_id AND account_type = @account_type
		ORDER BY account_id
	`, r.table(accountsTable))

	q := r.client.Query(query)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
		{Name: "account_type", Value: accountType},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("GetAccountByType: reading query: %w", err)
	}

	var first *ledger.Account
	matched := 0
	for {
		var row AccountRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("GetAccountByType: iterating: %w", err)
		}
		if first == nil {
			acc := rowToAccount(row)
			first = &acc
		}
		matched++
	}

	if first == nil {
		return nil, 0, ledger.ErrNotFound
	}
	return first, matched, nil
}

// GetAccountByID fetches one account by id scoped to the user.
func (r *Repository) GetAccountByID(ctx context.Context, userID, accountID string) (*ledger.Account, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			account_id,
			user_id,
			account_type,
			account_nickname,
			balance,
			currency
		FROM %s
		WHERE account_id = @account_id AND user_id = @user_id
		LIMIT 1
	`, r.table(accountsTable))

	q := r.client.Query(query)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "account_id", Value: accountID},
		{Name: "user_id", Value: userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetAccountByID: reading query: %w", err)
	}

	var row AccountRow
	err = it.Next(&row)
	if err == iterator.Done {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetAccountByID: iterating: %w", err)
	}

	acc := rowToAccount(row)
	return &acc, nil
}

// ListAccounts retrieves all accounts for the user.
func (r *Repository) ListAccounts(ctx context.Context, userID string) ([]ledger.Account, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			account_id,
			user_id,
			account_type,
			account_nickname,
			balance,
			currency
		FROM %s
		WHERE user_id = @user_id
		ORDER BY account_id
	`, r.table(accountsTable))

	q := r.client.Query(query)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListAccounts: reading query: %w", err)
	}

	var accounts []ledger.Account
	for {
		var row AccountRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListAccounts: iterating: %w", err)
		}
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

// ListTransactions fetches the most recent ledger rows for an account,
// newest first.
func (r *Repository) ListTransactions(ctx context.Context, userID, accountID string, limit int) ([]ledger.Transaction, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			transaction_id,
			account_id,
			user_id,
			date,
			description,
			amount,
			currency,
			type,
			memo
		FROM %s
		WHERE account_id = @account_id AND user_id = @user_id
		ORDER BY date DESC
		LIMIT @limit
	`, r.table(transactionsTable))

	q := r.client.Query(query)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "account_id", Value: accountID},
		{Name: "user_id", Value: userID},
		{Name: "limit", Value: int64(limit)},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: reading query: %w", err)
	}

	var txns []ledger.Transaction
	for {
		var row TransactionRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListTransactions: iterating: %w", err)
		}
		txns = append(txns, ledger.Transaction{
			TransactionID: row.TransactionID,
			AccountID:     row.AccountID,
			UserID:        row.UserID,
			Date:          row.Date,
			Description:   row.Description,
			Amount:        row.Amount,
			Currency:      row.Currency,
			Type:          ledger.TransactionType(row.Type),
			Memo:          row.Memo,
		})
	}

	return txns, nil
}
