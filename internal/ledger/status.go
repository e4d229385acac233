package ledger

// Status is the closed result vocabulary returned by every public ledger
// operation. Callers branch on Status, never on error strings.
type Status string

const (
	StatusSuccess Status = "SUCCESS"

	// Configuration / connectivity.
	StatusClientNotInitialized Status = "ERROR_CLIENT_NOT_INITIALIZED"
	StatusQueryFailed          Status = "ERROR_QUERY_FAILED"

	// Validation.
	StatusInvalidAmount     Status = "ERROR_INVALID_AMOUNT"
	StatusSameAccount       Status = "ERROR_SAME_ACCOUNT"
	StatusMissingParameters Status = "ERROR_MISSING_PARAMETERS"
	StatusInvalidDateFormat Status = "ERROR_INVALID_DATE_FORMAT"

	// Lookup outcomes.
	StatusAccountNotFound     Status = "ERROR_ACCOUNT_NOT_FOUND"
	StatusBillerNotFound      Status = "ERROR_BILLER_NOT_FOUND"
	StatusAmbiguousBiller     Status = "AMBIGUOUS_BILLER_FOUND"
	StatusAmbiguousAccount    Status = "ERROR_AMBIGUOUS_ACCOUNT"
	StatusNoAccountsFound     Status = "NO_ACCOUNTS_FOUND"
	StatusNoTransactionsFound Status = "NO_TRANSACTIONS_FOUND"
	StatusNoBillersFound      Status = "NO_BILLERS_FOUND"

	// Business rules.
	StatusSufficientFunds   Status = "SUFFICIENT_FUNDS"
	StatusInsufficientFunds Status = "INSUFFICIENT_FUNDS"
	StatusInsufficientErr   Status = "ERROR_INSUFFICIENT_FUNDS"
	StatusCurrencyMismatch  Status = "ERROR_CURRENCY_MISMATCH"
	StatusDuplicateBiller   Status = "ERROR_DUPLICATE_BILLER"

	// Write outcomes.
	StatusTransactionFailed Status = "ERROR_TRANSACTION_FAILED"
	StatusException         Status = "ERROR_EXCEPTION"
	StatusNoRowsUpdated     Status = "WARNING_NO_ROWS_UPDATED"

	// RemoveBiller on an already-inactive biller surfaces as this distinct
	// status rather than an idempotent success.
	StatusBillerNotFoundOrNoChange Status = "ERROR_BILLER_NOT_FOUND_OR_NO_CHANGE"
)

// IsError reports whether s represents a hard failure rather than a normal
// lookup or quote outcome.
func (s Status) IsError() bool {
	switch s {
	case StatusSuccess, StatusSufficientFunds, StatusInsufficientFunds,
		StatusAmbiguousBiller, StatusNoAccountsFound,
		StatusNoTransactionsFound, StatusNoBillersFound, StatusNoRowsUpdated:
		return false
	}
	return true
}
