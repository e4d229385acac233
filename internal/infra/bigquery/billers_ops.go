package bigquery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/kkrishnan90/mmt-live-api/internal/ledger"
)

// FindBillers returns registered billers matching the filter. Empty filter
// fields are not applied.
func (r *Repository) FindBillers(ctx context.Context, userID string, filter ledger.BillerFilter) ([]ledger.Biller, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	conditions := []string{"user_id = @user_id"}
	params := []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
	}
	if filter.BillerType != "" {
		conditions = append(conditions, "biller_type = @biller_type")
		params = append(params, bigquery.QueryParameter{Name: "biller_type", Value: filter.BillerType})
	}
	if filter.PayeeNickname != "" {
		conditions = append(conditions, "payee_nickname = @payee_nickname")
		params = append(params, bigquery.QueryParameter{Name: "payee_nickname", Value: filter.PayeeNickname})
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "status = 'ACTIVE'")
	}

	query := fmt.Sprintf(`
		SELECT
			biller_id,
			user_id,
			biller_name,
			biller_type,
			account_number,
			payee_nickname,
			default_payment_account_id,
			status,
			due_amount,
			due_date,
			registration_ts,
			last_updated_ts
		FROM %s
		WHERE %s
		ORDER BY biller_name, payee_nickname
	`, r.table(billersTable), strings.Join(conditions, " AND "))

	q := r.client.Query(query)
	q.Parameters = params

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("FindBillers: reading query: %w", err)
	}

	var billers []ledger.Biller
	for {
		var row BillerRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("FindBillers: iterating: %w", err)
		}
		billers = append(billers, rowToBiller(row))
	}

	return billers, nil
}

// GetBillerName fetches only the display name for a biller id.
func (r *Repository) GetBillerName(ctx context.Context, userID, billerID string) (string, error) {
	if err := r.ready(); err != nil {
		return "", err
	}

	query := fmt.Sprintf(`
		SELECT biller_name
		FROM %s
		WHERE biller_id = @biller_id AND user_id = @user_id
		LIMIT 1
	`, r.table(billersTable))

	q := r.client.Query(query)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "biller_id", Value: billerID},
		{Name: "user_id", Value: userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return "", fmt.Errorf("GetBillerName: reading query: %w", err)
	}

	var row struct {
		BillerName string `bigquery:"biller_name"`
	}
	err = it.Next(&row)
	if err == iterator.Done {
		return "", ledger.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("GetBillerName: iterating: %w", err)
	}

	return row.BillerName, nil
}

// InsertBiller writes one new biller row.
func (r *Repository) InsertBiller(ctx context.Context, b *ledger.Biller) error {
	if err := r.ready(); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (
			biller_id, user_id, biller_name, biller_type, account_number,
			payee_nickname, default_payment_account_id, status,
			due_amount, due_date, registration_ts, last_updated_ts
		) VALUES (
			@biller_id, @user_id, @biller_name, @biller_type, @account_number,
			@payee_nickname, @default_payment_account_id, @status,
			@due_amount, @due_date, @registration_ts, @last_updated_ts
		)
	`, r.table(billersTable))

	var dueDate bigquery.NullDate
	if b.HasDueDate {
		dueDate = bigquery.NullDate{Date: b.DueDate, Valid: true}
	}

	params := []bigquery.QueryParameter{
		{Name: "biller_id", Value: b.BillerID},
		{Name: "user_id", Value: b.UserID},
		{Name: "biller_name", Value: b.BillerName},
		{Name: "biller_type", Value: b.BillerType},
		{Name: "account_number", Value: b.AccountNumber},
		{Name: "payee_nickname", Value: b.PayeeNickname},
		{Name: "default_payment_account_id", Value: b.DefaultPaymentAccountID},
		{Name: "status", Value: string(b.Status)},
		{Name: "due_amount", Value: b.DueAmount},
		{Name: "due_date", Value: dueDate},
		{Name: "registration_ts", Value: b.RegistrationTS},
		{Name: "last_updated_ts", Value: b.LastUpdatedTS},
	}

	if _, err := r.runDML(ctx, query, params); err != nil {
		return fmt.Errorf("InsertBiller: %w", err)
	}
	return nil
}

// UpdateBiller patches the set fields of u and always stamps last_updated_ts.
// Returns rows affected; zero means nothing matched.
func (r *Repository) UpdateBiller(ctx context.Context, userID, billerID string, u ledger.BillerUpdate, ts time.Time) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}

	var setClauses []string
	var params []bigquery.QueryParameter

	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = @%s", column, column))
		params = append(params, bigquery.QueryParameter{Name: column, Value: value})
	}

	if u.BillerName != nil {
		add("biller_name", *u.BillerName)
	}
	if u.BillerType != nil {
		add("biller_type", *u.BillerType)
	}
	if u.AccountNumber != nil {
		add("account_number", *u.AccountNumber)
	}
	if u.PayeeNickname != nil {
		add("payee_nickname", *u.PayeeNickname)
	}
	if u.DefaultPaymentAccountID != nil {
		add("default_payment_account_id", *u.DefaultPaymentAccountID)
	}
	if u.Status != nil {
		add("status", string(*u.Status))
	}
	if u.DueAmount != nil {
		add("due_amount", u.DueAmount)
	}
	if u.DueDate != nil {
		add("due_date", bigquery.NullDate{Date: *u.DueDate, Valid: true})
	}

	if len(setClauses) == 0 {
		return 0, nil
	}

	whereClause := "user_id = @user_id AND biller_id = @biller_id"
	if u.Status != nil && len(setClauses) == 1 {
		// A status-only update of an already matching row must report zero
		// affected rows so deactivating a biller twice is detectable.
		whereClause += " AND status != @status"
	}

	setClauses = append(setClauses, "last_updated_ts = @last_updated_ts")
	params = append(params,
		bigquery.QueryParameter{Name: "last_updated_ts", Value: ts},
		bigquery.QueryParameter{Name: "user_id", Value: userID},
		bigquery.QueryParameter{Name: "biller_id", Value: billerID},
	)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE %s
	`, r.table(billersTable), strings.Join(setClauses, ", "), whereClause)

	rows, err := r.runDML(ctx, query, params)
	if err != nil {
		return 0, fmt.Errorf("UpdateBiller: %w", err)
	}
	return rows, nil
}
