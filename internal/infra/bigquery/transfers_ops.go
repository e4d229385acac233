package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"

	"github.com/kkrishnan90/mmt-live-api/internal/ledger"
)

// ApplyTransfer executes the two balance updates and two transaction rows of a
// fund transfer as a single multi-statement transaction, so a failure in any
// statement rolls back the whole movement.
func (r *Repository) ApplyTransfer(ctx context.Context, legs ledger.TransferLegs) error {
	if err := r.ready(); err != nil {
		return err
	}

	query := fmt.Sprintf(`
	BEGIN TRANSACTION;

	UPDATE %[1]s
	SET balance = balance - @amount
	WHERE account_id = @from_account_id AND user_id = @user_id;

	UPDATE %[1]s
	SET balance = balance + @amount
	WHERE account_id = @to_account_id AND user_id = @user_id;

	INSERT INTO %[2]s (transaction_id, account_id, user_id, date, description, amount, currency, type, memo)
	VALUES (@debit_transaction_id, @from_account_id, @user_id, @timestamp, @debit_description, -@amount, @currency, 'transfer_debit', @memo);

	INSERT INTO %[2]s (transaction_id, account_id, user_id, date, description, amount, currency, type, memo)
	VALUES (@credit_transaction_id, @to_account_id, @user_id, @timestamp, @credit_description, @amount, @currency, 'transfer_credit', @memo);

	COMMIT TRANSACTION;
	`, r.table(accountsTable), r.table(transactionsTable))

	params := []bigquery.QueryParameter{
		{Name: "amount", Value: legs.Amount},
		{Name: "from_account_id", Value: legs.FromAccountID},
		{Name: "to_account_id", Value: legs.ToAccountID},
		{Name: "user_id", Value: legs.UserID},
		{Name: "debit_transaction_id", Value: legs.DebitTransactionID},
		{Name: "credit_transaction_id", Value: legs.CreditTransactionID},
		{Name: "timestamp", Value: legs.Timestamp},
		{Name: "debit_description", Value: legs.DebitDescription},
		{Name: "credit_description", Value: legs.CreditDescription},
		{Name: "currency", Value: legs.Currency},
		{Name: "memo", Value: legs.Memo},
	}

	if _, err := r.runDML(ctx, query, params); err != nil {
		r.rollback(ctx, "ApplyTransfer")
		return fmt.Errorf("ApplyTransfer: %w", err)
	}
	return nil
}

// ApplyBillPayment debits the paying account, records the payment transaction
// and clears the biller's outstanding due in one multi-statement transaction.
func (r *Repository) ApplyBillPayment(ctx context.Context, legs ledger.BillPaymentLegs) error {
	if err := r.ready(); err != nil {
		return err
	}

	query := fmt.Sprintf(`
	BEGIN TRANSACTION;

	UPDATE %s
	SET balance = balance - @amount
	WHERE account_id = @from_account_id AND user_id = @user_id;

	INSERT INTO %s (transaction_id, account_id, user_id, date, description, amount, currency, type, memo)
	VALUES (@transaction_id, @from_account_id, @user_id, @timestamp, @description, -@amount, @currency, 'bill_payment', @memo);

	UPDATE %s
	SET due_amount = 0,
		due_date = DATE(@timestamp),
		last_updated_ts = @timestamp
	WHERE biller_id = @biller_id AND user_id = @user_id;

	COMMIT TRANSACTION;
	`, r.table(accountsTable), r.table(transactionsTable), r.table(billersTable))

	params := []bigquery.QueryParameter{
		{Name: "amount", Value: legs.Amount},
		{Name: "from_account_id", Value: legs.FromAccountID},
		{Name: "user_id", Value: legs.UserID},
		{Name: "transaction_id", Value: legs.TransactionID},
		{Name: "timestamp", Value: legs.Timestamp},
		{Name: "description", Value: legs.Description},
		{Name: "currency", Value: legs.Currency},
		{Name: "memo", Value: legs.Memo},
		{Name: "biller_id", Value: legs.BillerID},
	}

	if _, err := r.runDML(ctx, query, params); err != nil {
		r.rollback(ctx, "ApplyBillPayment")
		return fmt.Errorf("ApplyBillPayment: %w", err)
	}
	return nil
}

// rollback issues an explicit ROLLBACK after a failed multi-statement script.
// BigQuery aborts the transaction on error already, so this is best effort.
func (r *Repository) rollback(ctx context.Context, op string) {
	job, err := r.client.Query("ROLLBACK TRANSACTION;").Run(ctx)
	if err == nil {
		_, err = job.Wait(ctx)
	}
	if err != nil {
		r.log.Warn().Err(err).Str("operation", op).Msg("rollback after failed transaction")
	}
}
