package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// dateLayout is the only accepted textual form for due dates. Anything else
// is a hard ERROR_INVALID_DATE_FORMAT, never a silent coercion.
const dateLayout = "2006-01-02"

func parseDueDate(s string) (civil.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return civil.Date{}, err
	}
	return civil.DateOf(t), nil
}

// FindBiller resolves a biller by type and optional nickname. More than one
// ACTIVE match is returned as AMBIGUOUS_BILLER_FOUND with every candidate;
// the engine never guesses between them.
func (e *Engine) FindBiller(ctx context.Context, userID, billType, payeeNickname string) BillerResult {
	const op = "get_bill_details"
	params := map[string]any{"bill_type": billType, "payee_nickname": payeeNickname, "user_id": userID}

	filter := BillerFilter{BillerType: billType, PayeeNickname: payeeNickname, ActiveOnly: true}
	billers, err := e.store.FindBillers(ctx, userID, filter)
	if err != nil {
		st := storeStatus(err)
		if st == StatusAccountNotFound {
			st = StatusBillerNotFound
		}
		e.recordAction(op, params, actionFindBillers, st, "", err.Error())
		return BillerResult{Status: st, Message: "Failed to look up biller."}
	}

	switch len(billers) {
	case 0:
		msg := fmt.Sprintf("Biller for type %q", billType)
		if payeeNickname != "" {
			msg += fmt.Sprintf(" with nickname %q", payeeNickname)
		}
		msg += fmt.Sprintf(" not found for user %q.", userID)
		e.recordAction(op, params, actionFindBillers, StatusBillerNotFound, "", msg)
		return BillerResult{Status: StatusBillerNotFound, Message: msg}
	case 1:
		b := billers[0]
		e.recordAction(op, params, actionFindBillers, StatusSuccess, fmt.Sprintf("Biller found: %s - %s", b.BillerID, b.BillerName), "")
		res := BillerResult{
			Status:                  StatusSuccess,
			BillerID:                b.BillerID,
			BillerName:              b.BillerName,
			DueAmount:               MoneyFloat(b.DueAmount),
			DefaultPaymentAccountID: b.DefaultPaymentAccountID,
		}
		if b.HasDueDate {
			res.DueDate = b.DueDate.String()
		}
		return res
	default:
		names := make([]string, 0, len(billers))
		for _, b := range billers {
			names = append(names, b.BillerName)
		}
		msg := fmt.Sprintf("Multiple billers found for type %q", billType)
		if payeeNickname != "" {
			msg += fmt.Sprintf(" with nickname %q", payeeNickname)
		}
		msg += fmt.Sprintf(". Please specify. Found: %s for user %q.", strings.Join(names, ", "), userID)
		e.recordAction(op, params, actionFindBillers, StatusAmbiguousBiller, fmt.Sprintf("Found %d billers.", len(billers)), msg)
		return BillerResult{Status: StatusAmbiguousBiller, Message: msg, Billers: billers}
	}
}

// RegisterBiller creates a new ACTIVE biller. An existing ACTIVE biller with
// the same (user, type, account number) is rejected with its id; the check is
// a pre-insert read, so the uniqueness is best-effort under concurrency.
func (e *Engine) RegisterBiller(ctx context.Context, userID, billerName, billerType, accountNumber, payeeNickname, defaultPaymentAccountID string, dueAmount float64, dueDate string) RegisterResult {
	const op = "register_biller"
	params := map[string]any{
		"user_id": userID, "biller_name": billerName, "biller_type": billerType,
		"account_number": accountNumber, "payee_nickname": payeeNickname,
		"default_payment_account_id": defaultPaymentAccountID,
		"due_amount":                 dueAmount, "due_date": dueDate,
	}

	if userID == "" || billerName == "" || billerType == "" || accountNumber == "" {
		msg := "User ID, Biller Name, Biller Type, and Account Number are required."
		e.record(op, params, StatusMissingParameters, "", msg)
		return RegisterResult{Status: StatusMissingParameters, Message: msg}
	}

	existing, err := e.store.FindBillers(ctx, userID, BillerFilter{BillerType: billerType, ActiveOnly: true})
	if err != nil {
		st := storeStatus(err)
		e.recordAction(op, params, actionFindBillers, st, "", fmt.Sprintf("Biller check failed: %v", err))
		return RegisterResult{Status: st, Message: "Failed to check for existing biller."}
	}
	for _, b := range existing {
		if b.AccountNumber == accountNumber {
			msg := fmt.Sprintf("An active biller with the same type and account number already exists for this user (Biller ID: %s).", b.BillerID)
			e.recordAction(op, params, actionFindBillers, StatusDuplicateBiller, "", msg)
			return RegisterResult{Status: StatusDuplicateBiller, Message: msg, BillerID: b.BillerID}
		}
	}

	biller := Biller{
		BillerID:                "biller_reg_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		UserID:                  userID,
		BillerName:              billerName,
		BillerType:              billerType,
		AccountNumber:           accountNumber,
		PayeeNickname:           payeeNickname,
		DefaultPaymentAccountID: defaultPaymentAccountID,
		Status:                  BillerActive,
		DueAmount:               MoneyFromFloat(dueAmount),
		RegistrationTS:          time.Now().UTC(),
		LastUpdatedTS:           time.Now().UTC(),
	}
	if dueDate != "" {
		d, err := parseDueDate(dueDate)
		if err != nil {
			msg := "Invalid due_date format. Please use YYYY-MM-DD."
			e.record(op, params, StatusInvalidDateFormat, "", msg)
			return RegisterResult{Status: StatusInvalidDateFormat, Message: msg}
		}
		biller.DueDate = d
		biller.HasDueDate = true
	}

	if err := e.store.InsertBiller(ctx, &biller); err != nil {
		st := storeStatus(err)
		if st == StatusAccountNotFound {
			st = StatusException
		}
		e.recordAction(op, params, actionInsertBiller, st, "", err.Error())
		return RegisterResult{Status: st, Message: "Biller registration failed during execution."}
	}

	msg := fmt.Sprintf("Biller %q registered successfully with ID %s.", billerName, biller.BillerID)
	e.recordAction(op, params, actionInsertBiller, StatusSuccess, msg, "")
	return RegisterResult{Status: StatusSuccess, Message: msg, BillerID: biller.BillerID}
}

// UpdateBiller patches the closed field set of u onto an existing biller.
// last_updated_ts is always stamped. Zero affected rows is reported as
// WARNING_NO_ROWS_UPDATED so callers can tell "nothing matched" from an
// infrastructure failure.
func (e *Engine) UpdateBiller(ctx context.Context, userID, billerID string, u BillerUpdate) UpdateResult {
	const op = "update_biller_details"
	params := map[string]any{"user_id": userID, "payee_id": billerID}

	if u.IsEmpty() {
		msg := "No updates provided to apply."
		e.record(op, params, StatusMissingParameters, "", msg)
		return UpdateResult{Status: StatusMissingParameters, Message: msg}
	}

	rows, err := e.store.UpdateBiller(ctx, userID, billerID, u, time.Now().UTC())
	if err != nil {
		st := storeStatus(err)
		if st == StatusAccountNotFound {
			st = StatusException
		}
		e.recordAction(op, params, actionUpdateBiller, st, "", err.Error())
		return UpdateResult{Status: st, Message: "Biller update failed during execution."}
	}

	if rows == 0 {
		msg := fmt.Sprintf("Biller %q not found for user %q, or no changes applied.", billerID, userID)
		e.recordAction(op, params, actionUpdateBiller, StatusNoRowsUpdated, msg, "")
		return UpdateResult{Status: StatusNoRowsUpdated, Message: msg, PayeeID: billerID}
	}

	msg := fmt.Sprintf("Biller %q updated successfully for user %q.", billerID, userID)
	e.recordAction(op, params, actionUpdateBiller, StatusSuccess, msg, "")
	return UpdateResult{Status: StatusSuccess, Message: msg, PayeeID: billerID, UpdatedRows: rows}
}

// RemoveBiller soft-deletes by flipping status to INACTIVE. Removing an
// already-inactive biller surfaces as ERROR_BILLER_NOT_FOUND_OR_NO_CHANGE
// rather than an idempotent success.
func (e *Engine) RemoveBiller(ctx context.Context, userID, billerID string) UpdateResult {
	const op = "remove_biller"
	params := map[string]any{"user_id": userID, "payee_id": billerID}

	inactive := BillerInactive
	res := e.UpdateBiller(ctx, userID, billerID, BillerUpdate{Status: &inactive})

	switch res.Status {
	case StatusSuccess:
		msg := fmt.Sprintf("Biller %q marked as inactive successfully.", billerID)
		e.recordAction(op, params, actionRemoveBiller, StatusSuccess, fmt.Sprintf("Biller %s marked as INACTIVE.", billerID), "")
		return UpdateResult{Status: StatusSuccess, Message: msg, PayeeID: billerID}
	case StatusNoRowsUpdated:
		msg := fmt.Sprintf("Biller %q not found for user %q or already inactive.", billerID, userID)
		e.recordAction(op, params, actionRemoveBiller, StatusBillerNotFoundOrNoChange, "", msg)
		return UpdateResult{Status: StatusBillerNotFoundOrNoChange, Message: msg, PayeeID: billerID}
	default:
		e.recordAction(op, params, actionRemoveBiller, res.Status, "", res.Message)
		return res
	}
}

// ListBillers returns every registered biller for the user, any status.
func (e *Engine) ListBillers(ctx context.Context, userID string) BillersResult {
	const op = "list_registered_billers"
	params := map[string]any{"user_id": userID}

	billers, err := e.store.FindBillers(ctx, userID, BillerFilter{})
	if err != nil {
		st := storeStatus(err)
		e.recordAction(op, params, actionListBillers, st, "", err.Error())
		return BillersResult{Status: st, Message: "Failed to list billers.", Billers: []Biller{}}
	}
	if len(billers) == 0 {
		msg := fmt.Sprintf("No billers found for user %q.", userID)
		e.recordAction(op, params, actionListBillers, StatusNoBillersFound, msg, "")
		return BillersResult{Status: StatusNoBillersFound, Message: msg, Billers: []Biller{}}
	}

	e.recordAction(op, params, actionListBillers, StatusSuccess, fmt.Sprintf("Retrieved %d biller(s).", len(billers)), "")
	return BillersResult{Status: StatusSuccess, Billers: billers}
}
