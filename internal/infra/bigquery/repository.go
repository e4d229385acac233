// Package bigquery implements ledger.Store against the bank warehouse
// dataset. Reads are parameterized SELECTs; the multi-row transfer and bill
// payment writes run as multi-statement scripts inside BEGIN/COMMIT
// TRANSACTION so all rows commit together or none do.
package bigquery

import (
	"context"
	"fmt"
	"math/big"

	"cloud.google.com/go/bigquery"
	"github.com/rs/zerolog"

	"github.com/kkrishnan90/mmt-live-api/internal/ledger"
)

const (
	accountsTable     = "Accounts"
	transactionsTable = "Transactions"
	billersTable      = "RegisteredBillers"
)

// Repository is the warehouse-backed ledger.Store. It holds one shared
// BigQuery client for the whole process.
type Repository struct {
	client    *bigquery.Client
	projectID string
	datasetID string
	log       zerolog.Logger
}

var _ ledger.Store = (*Repository)(nil)

// NewRepository creates a repository with a shared BigQuery client. It
// assumes Application Default Credentials are configured.
func NewRepository(ctx context.Context, projectID, datasetID string, log zerolog.Logger) (*Repository, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewRepository: creating client: %w", err)
	}
	return &Repository{client: client, projectID: projectID, datasetID: datasetID, log: log}, nil
}

// Close closes the BigQuery client connection.
func (r *Repository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// ready guards every public operation: an unconfigured client short-circuits
// before any read or write is attempted.
func (r *Repository) ready() error {
	if r == nil || r.client == nil {
		return ledger.ErrNotInitialized
	}
	return nil
}

func (r *Repository) table(name string) string {
	return "`" + r.projectID + "." + r.datasetID + "." + name + "`"
}

// runDML executes a parameterized DML statement and returns the number of
// affected rows.
func (r *Repository) runDML(ctx context.Context, query string, params []bigquery.QueryParameter) (int64, error) {
	q := r.client.Query(query)
	q.Parameters = params

	job, err := q.Run(ctx)
	if err != nil {
		return 0, fmt.Errorf("running query: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return 0, fmt.Errorf("waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return 0, fmt.Errorf("job error: %w", err)
	}

	if qs, ok := status.Statistics.Details.(*bigquery.QueryStatistics); ok {
		return qs.NumDMLAffectedRows, nil
	}
	return 0, nil
}

func rowToAccount(row AccountRow) ledger.Account {
	bal := row.Balance
	if bal == nil {
		bal = new(big.Rat)
	}
	return ledger.Account{
		AccountID:       row.AccountID,
		UserID:          row.UserID,
		AccountType:     row.AccountType,
		AccountNickname: row.AccountNickname,
		Balance:         bal,
		Currency:        row.Currency,
	}
}

func rowToBiller(row BillerRow) ledger.Biller {
	b := ledger.Biller{
		BillerID:                row.BillerID,
		UserID:                  row.UserID,
		BillerName:              row.BillerName,
		BillerType:              row.BillerType,
		AccountNumber:           row.AccountNumber,
		PayeeNickname:           row.PayeeNickname,
		DefaultPaymentAccountID: row.DefaultPaymentAccountID,
		Status:                  ledger.BillerStatus(row.Status),
		DueAmount:               row.DueAmount,
		RegistrationTS:          row.RegistrationTS,
		LastUpdatedTS:           row.LastUpdatedTS,
	}
	if row.DueDate.Valid {
		b.DueDate = row.DueDate.Date
		b.HasDueDate = true
	}
	return b
}
