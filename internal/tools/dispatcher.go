// Package tools declares the Gemini function tools for the banking and travel
// domains and dispatches the model's function calls to the local
// implementations.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/kkrishnan90/mmt-live-api/internal/ledger"
	"github.com/kkrishnan90/mmt-live-api/internal/travel"
)

// Dispatcher routes Gemini function calls to the transfer engine and the
// travel catalog on behalf of a single authenticated user.
type Dispatcher struct {
	engine  *ledger.Engine
	catalog *travel.Catalog
	userID  string
	log     zerolog.Logger
}

// NewDispatcher creates a dispatcher bound to one user.
func NewDispatcher(engine *ledger.Engine, catalog *travel.Catalog, userID string, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		engine:  engine,
		catalog: catalog,
		userID:  userID,
		log:     log.With().Str("component", "tools").Logger(),
	}
}

// Declarations returns the tool set to register with the Live session.
func (d *Dispatcher) Declarations() []*genai.Tool {
	return []*genai.Tool{
		{FunctionDeclarations: bankingDeclarations()},
		{FunctionDeclarations: travelDeclarations()},
	}
}

// Dispatch executes one function call and wraps the result for the model.
// Unknown functions produce an error response rather than failing the session.
func (d *Dispatcher) Dispatch(ctx context.Context, fc *genai.FunctionCall) *genai.FunctionResponse {
	d.log.Info().Str("function", fc.Name).Interface("args", fc.Args).Msg("Dispatching function call")

	var result any
	switch fc.Name {
	case "getAccountBalance":
		result = d.engine.GetAccount(ctx, d.userID, strArg(fc.Args, "account_type"))
	case "getTransactionHistory":
		result = d.engine.TransactionHistory(ctx, d.userID, strArg(fc.Args, "account_type"), intArg(fc.Args, "limit"))
	case "initiateFundTransfer":
		result = d.engine.InitiateTransferCheck(ctx, d.userID,
			strArg(fc.Args, "from_account_type"), strArg(fc.Args, "to_account_type"),
			floatArg(fc.Args, "amount"))
	case "executeFundTransfer":
		result = d.engine.ExecuteTransfer(ctx, d.userID,
			strArg(fc.Args, "from_account_id"), strArg(fc.Args, "to_account_id"),
			floatArg(fc.Args, "amount"), strArg(fc.Args, "currency"), strArg(fc.Args, "memo"))
	case "getBillDetails":
		result = d.engine.FindBiller(ctx, d.userID, strArg(fc.Args, "bill_type"), strArg(fc.Args, "payee_nickname"))
	case "payBill":
		result = d.engine.PayBill(ctx, d.userID,
			strArg(fc.Args, "payee_id"), floatArg(fc.Args, "amount"), strArg(fc.Args, "from_account_id"))
	case "registerBiller":
		result = d.engine.RegisterBiller(ctx, d.userID,
			strArg(fc.Args, "biller_name"), strArg(fc.Args, "biller_type"),
			strArg(fc.Args, "account_number"), strArg(fc.Args, "payee_nickname"),
			strArg(fc.Args, "default_payment_account_id"),
			floatArg(fc.Args, "due_amount"), strArg(fc.Args, "due_date"))
	case "updateBillerDetails":
		result = d.updateBiller(ctx, fc.Args)
	case "removeBiller":
		result = d.engine.RemoveBiller(ctx, d.userID, strArg(fc.Args, "biller_id"))
	case "listRegisteredBillers":
		result = d.engine.ListBillers(ctx, d.userID)
	case "findAccountByNaturalLanguage":
		result = d.engine.ResolveAccount(ctx, d.userID, strArg(fc.Args, "account_description"))

	case "searchFlights":
		result = d.catalog.SearchFlights(
			strArg(fc.Args, "origin"), strArg(fc.Args, "destination"),
			strArg(fc.Args, "departure_date"), intArg(fc.Args, "passengers"))
	case "bookFlight":
		result = d.catalog.BookFlight(d.userID,
			strArg(fc.Args, "flight_id"), strArg(fc.Args, "passenger_name"),
			strArg(fc.Args, "passenger_email"), intArg(fc.Args, "passengers"))
	case "getFlightStatus":
		result = d.catalog.GetFlightStatus(strArg(fc.Args, "booking_id"))
	case "searchHotels":
		result = d.catalog.SearchHotels(
			strArg(fc.Args, "city"), strArg(fc.Args, "check_in_date"),
			strArg(fc.Args, "check_out_date"), intArg(fc.Args, "guests"))
	case "bookHotel":
		result = d.catalog.BookHotel(d.userID,
			strArg(fc.Args, "hotel_id"), strArg(fc.Args, "guest_name"),
			strArg(fc.Args, "guest_email"), strArg(fc.Args, "check_in_date"),
			strArg(fc.Args, "check_out_date"), intArg(fc.Args, "rooms"))
	case "getBookingDetails":
		result = d.catalog.GetBookingDetails(strArg(fc.Args, "booking_id"))
	case "listUserBookings":
		result = d.catalog.ListBookings(d.userID)
	case "cancelBooking":
		result = d.catalog.CancelBooking(strArg(fc.Args, "booking_id"))
	case "getDestinationInfo":
		result = d.catalog.GetDestinationInfo(strArg(fc.Args, "city"))
	case "getWeatherInfo":
		result = d.catalog.GetWeatherInfo(strArg(fc.Args, "city"))
	case "searchActivities":
		result = d.catalog.SearchActivities(strArg(fc.Args, "city"), strArg(fc.Args, "activity_type"))

	default:
		d.log.Warn().Str("function", fc.Name).Msg("Unknown function requested by model")
		return &genai.FunctionResponse{
			ID:   fc.ID,
			Name: fc.Name,
			Response: map[string]any{
				"status":  "error",
				"message": fmt.Sprintf("Function %s not implemented or available.", fc.Name),
			},
		}
	}

	return &genai.FunctionResponse{
		ID:       fc.ID,
		Name:     fc.Name,
		Response: toResponseMap(result),
	}
}

// updateBiller converts loose model arguments into the closed update struct,
// ignoring unrecognized fields with a warning.
func (d *Dispatcher) updateBiller(ctx context.Context, args map[string]any) any {
	billerID := strArg(args, "biller_id")
	var u ledger.BillerUpdate

	for key, raw := range args {
		switch key {
		case "biller_id":
		case "biller_name":
			u.BillerName = strPtr(raw)
		case "biller_type":
			u.BillerType = strPtr(raw)
		case "account_number":
			u.AccountNumber = strPtr(raw)
		case "payee_nickname":
			u.PayeeNickname = strPtr(raw)
		case "default_payment_account_id":
			u.DefaultPaymentAccountID = strPtr(raw)
		case "status":
			if s, ok := raw.(string); ok {
				status := ledger.BillerStatus(s)
				u.Status = &status
			}
		case "due_amount":
			if f, ok := raw.(float64); ok {
				u.DueAmount = ledger.MoneyFromFloat(f)
			}
		case "due_date":
			s, ok := raw.(string)
			if !ok {
				continue
			}
			date, err := civil.ParseDate(s)
			if err != nil {
				return map[string]any{
					"status":  string(ledger.StatusInvalidDateFormat),
					"message": fmt.Sprintf("Invalid due_date format: '%s'. Expected YYYY-MM-DD.", s),
				}
			}
			u.DueDate = &date
		default:
			d.log.Warn().Str("field", key).Msg("Ignoring unknown biller update field")
		}
	}

	return d.engine.UpdateBiller(ctx, d.userID, billerID, u)
}

// toResponseMap reshapes a typed result into the generic map the Live API
// expects in a FunctionResponse.
func toResponseMap(v any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		return map[string]any{"status": "error", "message": "failed to encode tool result"}
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]any{"status": "error", "message": "failed to decode tool result"}
	}
	return out
}

func strArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func strPtr(raw any) *string {
	if s, ok := raw.(string); ok {
		return &s
	}
	return nil
}

func floatArg(args map[string]any, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func intArg(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
