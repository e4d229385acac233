package tools

import "google.golang.org/genai"

// bankingDeclarations describes the ledger operations exposed to the model.
func bankingDeclarations() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name:        "getAccountBalance",
			Description: "Get the balance and details of one of the user's bank accounts by account type, e.g. 'checking' or 'savings'.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"account_type": {Type: genai.TypeString, Description: "The type of account, e.g. 'checking' or 'savings'."},
				},
				Required: []string{"account_type"},
			},
		},
		{
			Name:        "getTransactionHistory",
			Description: "Get the most recent transactions for one of the user's accounts.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"account_type": {Type: genai.TypeString, Description: "The type of account, e.g. 'checking' or 'savings'."},
					"limit":        {Type: genai.TypeInteger, Description: "Maximum number of transactions to return. Defaults to 5."},
				},
				Required: []string{"account_type"},
			},
		},
		{
			Name:        "initiateFundTransfer",
			Description: "Check whether a transfer between two of the user's accounts is possible, verifying both accounts and the available balance. Call this before executeFundTransfer.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"from_account_type": {Type: genai.TypeString, Description: "Account type to transfer from."},
					"to_account_type":   {Type: genai.TypeString, Description: "Account type to transfer to."},
					"amount":            {Type: genai.TypeNumber, Description: "Amount to transfer."},
				},
				Required: []string{"from_account_type", "to_account_type", "amount"},
			},
		},
		{
			Name:        "executeFundTransfer",
			Description: "Execute a previously checked transfer between two accounts, moving the money and recording both ledger entries.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"from_account_id": {Type: genai.TypeString, Description: "Source account ID from initiateFundTransfer."},
					"to_account_id":   {Type: genai.TypeString, Description: "Destination account ID from initiateFundTransfer."},
					"amount":          {Type: genai.TypeNumber, Description: "Amount to transfer."},
					"currency":        {Type: genai.TypeString, Description: "Currency code, e.g. 'USD'."},
					"memo":            {Type: genai.TypeString, Description: "Optional note for the transfer."},
				},
				Required: []string{"from_account_id", "to_account_id", "amount", "currency"},
			},
		},
		{
			Name:        "getBillDetails",
			Description: "Look up a registered biller by bill type, and optionally by nickname, returning its due amount and payment details.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"bill_type":      {Type: genai.TypeString, Description: "The type of bill, e.g. 'electricity' or 'internet'."},
					"payee_nickname": {Type: genai.TypeString, Description: "Optional nickname to disambiguate billers of the same type."},
				},
				Required: []string{"bill_type"},
			},
		},
		{
			Name:        "payBill",
			Description: "Pay a registered biller from one of the user's accounts and return a confirmation number.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"payee_id":        {Type: genai.TypeString, Description: "Biller ID from getBillDetails."},
					"amount":          {Type: genai.TypeNumber, Description: "Amount to pay."},
					"from_account_id": {Type: genai.TypeString, Description: "Account ID to pay from."},
				},
				Required: []string{"payee_id", "amount", "from_account_id"},
			},
		},
		{
			Name:        "registerBiller",
			Description: "Register a new biller for the user so bills can be looked up and paid later.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"biller_name":                {Type: genai.TypeString, Description: "Display name of the biller."},
					"biller_type":                {Type: genai.TypeString, Description: "Category, e.g. 'electricity'."},
					"account_number":             {Type: genai.TypeString, Description: "The user's account number with the biller."},
					"payee_nickname":             {Type: genai.TypeString, Description: "Optional nickname for the biller."},
					"default_payment_account_id": {Type: genai.TypeString, Description: "Optional account ID to pay from by default."},
					"due_amount":                 {Type: genai.TypeNumber, Description: "Optional amount currently due."},
					"due_date":                   {Type: genai.TypeString, Description: "Optional due date in YYYY-MM-DD format."},
				},
				Required: []string{"biller_name", "biller_type", "account_number"},
			},
		},
		{
			Name:        "updateBillerDetails",
			Description: "Update one or more fields of a registered biller.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"biller_id":                  {Type: genai.TypeString, Description: "ID of the biller to update."},
					"biller_name":                {Type: genai.TypeString, Description: "New display name."},
					"biller_type":                {Type: genai.TypeString, Description: "New category."},
					"account_number":             {Type: genai.TypeString, Description: "New account number."},
					"payee_nickname":             {Type: genai.TypeString, Description: "New nickname."},
					"default_payment_account_id": {Type: genai.TypeString, Description: "New default payment account ID."},
					"status":                     {Type: genai.TypeString, Description: "New status, ACTIVE or INACTIVE."},
					"due_amount":                 {Type: genai.TypeNumber, Description: "New due amount."},
					"due_date":                   {Type: genai.TypeString, Description: "New due date in YYYY-MM-DD format."},
				},
				Required: []string{"biller_id"},
			},
		},
		{
			Name:        "removeBiller",
			Description: "Remove a registered biller. The biller is deactivated and no longer appears in listings.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"biller_id": {Type: genai.TypeString, Description: "ID of the biller to remove."},
				},
				Required: []string{"biller_id"},
			},
		},
		{
			Name:        "listRegisteredBillers",
			Description: "List all active billers registered by the user.",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
		},
		{
			Name:        "findAccountByNaturalLanguage",
			Description: "Resolve a natural language account description like 'my salary account' to a concrete account. Returns candidates when the description is ambiguous.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"account_description": {Type: genai.TypeString, Description: "The user's words describing the account."},
				},
				Required: []string{"account_description"},
			},
		},
	}
}

// travelDeclarations describes the travel operations exposed to the model.
func travelDeclarations() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name:        "searchFlights",
			Description: "Search for available flights between two cities.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"origin":         {Type: genai.TypeString, Description: "Origin city or airport code."},
					"destination":    {Type: genai.TypeString, Description: "Destination city or airport code."},
					"departure_date": {Type: genai.TypeString, Description: "Departure date in YYYY-MM-DD format."},
					"passengers":     {Type: genai.TypeInteger, Description: "Number of passengers. Defaults to 1."},
				},
				Required: []string{"origin", "destination", "departure_date"},
			},
		},
		{
			Name:        "bookFlight",
			Description: "Book a flight found with searchFlights.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"flight_id":       {Type: genai.TypeString, Description: "Flight ID from searchFlights."},
					"passenger_name":  {Type: genai.TypeString, Description: "Lead passenger's full name."},
					"passenger_email": {Type: genai.TypeString, Description: "Contact email for the booking."},
					"passengers":      {Type: genai.TypeInteger, Description: "Number of passengers. Defaults to 1."},
				},
				Required: []string{"flight_id", "passenger_name", "passenger_email"},
			},
		},
		{
			Name:        "getFlightStatus",
			Description: "Get the live status of a flight booking by booking ID.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"booking_id": {Type: genai.TypeString, Description: "The booking ID, e.g. 'BK001'."},
				},
				Required: []string{"booking_id"},
			},
		},
		{
			Name:        "searchHotels",
			Description: "Search for available hotels in a city.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"city":           {Type: genai.TypeString, Description: "City to search in."},
					"check_in_date":  {Type: genai.TypeString, Description: "Check-in date in YYYY-MM-DD format."},
					"check_out_date": {Type: genai.TypeString, Description: "Check-out date in YYYY-MM-DD format."},
					"guests":         {Type: genai.TypeInteger, Description: "Number of guests. Defaults to 1."},
				},
				Required: []string{"city", "check_in_date", "check_out_date"},
			},
		},
		{
			Name:        "bookHotel",
			Description: "Book a hotel found with searchHotels.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"hotel_id":       {Type: genai.TypeString, Description: "Hotel ID from searchHotels."},
					"guest_name":     {Type: genai.TypeString, Description: "Lead guest's full name."},
					"guest_email":    {Type: genai.TypeString, Description: "Contact email for the booking."},
					"check_in_date":  {Type: genai.TypeString, Description: "Check-in date in YYYY-MM-DD format."},
					"check_out_date": {Type: genai.TypeString, Description: "Check-out date in YYYY-MM-DD format."},
					"rooms":          {Type: genai.TypeInteger, Description: "Number of rooms. Defaults to 1."},
				},
				Required: []string{"hotel_id", "guest_name", "guest_email", "check_in_date", "check_out_date"},
			},
		},
		{
			Name:        "getBookingDetails",
			Description: "Get the full details of a flight or hotel booking by booking ID.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"booking_id": {Type: genai.TypeString, Description: "The booking ID, e.g. 'BK001'."},
				},
				Required: []string{"booking_id"},
			},
		},
		{
			Name:        "listUserBookings",
			Description: "List all of the user's travel bookings.",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
		},
		{
			Name:        "cancelBooking",
			Description: "Cancel a flight or hotel booking by booking ID.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"booking_id": {Type: genai.TypeString, Description: "The booking ID to cancel."},
				},
				Required: []string{"booking_id"},
			},
		},
		{
			Name:        "getDestinationInfo",
			Description: "Gets detailed information about a travel destination including attractions and best time to visit.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"city": {Type: genai.TypeString, Description: "The destination city name."},
				},
				Required: []string{"city"},
			},
		},
		{
			Name:        "getWeatherInfo",
			Description: "Gets current weather and forecast information for a destination.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"city": {Type: genai.TypeString, Description: "The city name for weather information."},
				},
				Required: []string{"city"},
			},
		},
		{
			Name:        "searchActivities",
			Description: "Searches for activities and attractions in a destination city.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"city":          {Type: genai.TypeString, Description: "The destination city name."},
					"activity_type": {Type: genai.TypeString, Description: "Optional. The type of activity (e.g. 'Sightseeing', 'Adventure', 'Cultural')."},
				},
				Required: []string{"city"},
			},
		},
	}
}
