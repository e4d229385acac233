// Package travel provides an in-memory mock travel inventory with flight and
// hotel search, booking and cancellation. It stands in for a real travel
// supplier API so the voice assistant's travel tools work end to end.
package travel

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kkrishnan90/mmt-live-api/internal/audit"
)

const (
	StatusSuccess           = "SUCCESS"
	StatusError             = "ERROR"
	StatusNoFlightsFound    = "NO_FLIGHTS_FOUND"
	StatusNoHotelsFound     = "NO_HOTELS_FOUND"
	StatusNoBookingsFound   = "NO_BOOKINGS_FOUND"
	StatusFlightNotFound    = "FLIGHT_NOT_FOUND"
	StatusHotelNotFound     = "HOTEL_NOT_FOUND"
	StatusBookingNotFound   = "BOOKING_NOT_FOUND"
	StatusNotFlightBooking  = "NOT_FLIGHT_BOOKING"
	StatusInsufficientSeats = "INSUFFICIENT_SEATS"
	StatusInsufficientRooms = "INSUFFICIENT_ROOMS"
	StatusInvalidDates      = "INVALID_DATES"
	StatusAlreadyCancelled  = "ALREADY_CANCELLED"

	StatusDestinationNotFound = "DESTINATION_NOT_FOUND"
	StatusWeatherNotFound     = "WEATHER_NOT_FOUND"
	StatusNoActivitiesFound   = "NO_ACTIVITIES_FOUND"
)

// Flight is one bookable flight in the mock inventory.
type Flight struct {
	FlightID        string  `json:"flight_id"`
	Airline         string  `json:"airline"`
	FlightNumber    string  `json:"flight_number"`
	Origin          string  `json:"origin"`
	OriginCity      string  `json:"origin_city"`
	Destination     string  `json:"destination"`
	DestinationCity string  `json:"destination_city"`
	DepartureTime   string  `json:"departure_time"`
	ArrivalTime     string  `json:"arrival_time"`
	Duration        string  `json:"duration"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
	AvailableSeats  int     `json:"available_seats"`
	Aircraft        string  `json:"aircraft"`
}

// Hotel is one bookable hotel in the mock inventory.
type Hotel struct {
	HotelID        string   `json:"hotel_id"`
	Name           string   `json:"name"`
	City           string   `json:"city"`
	Country        string   `json:"country"`
	Rating         int      `json:"rating"`
	PricePerNight  float64  `json:"price_per_night"`
	Currency       string   `json:"currency"`
	Amenities      []string `json:"amenities"`
	AvailableRooms int      `json:"available_rooms"`
	RoomType       string   `json:"room_type"`
	CheckIn        string   `json:"check_in"`
	CheckOut       string   `json:"check_out"`
}

// Destination is a travel guide entry for one city.
type Destination struct {
	DestinationID      string   `json:"destination_id"`
	City               string   `json:"city"`
	Country            string   `json:"country"`
	Description        string   `json:"description"`
	PopularAttractions []string `json:"popular_attractions"`
	BestTimeToVisit    string   `json:"best_time_to_visit"`
	Currency           string   `json:"currency"`
	Language           string   `json:"language"`
}

// ForecastDay is one day of a weather forecast.
type ForecastDay struct {
	Date      string `json:"date"`
	High      int    `json:"high"`
	Low       int    `json:"low"`
	Condition string `json:"condition"`
}

// Weather is the current conditions and short forecast for a city.
type Weather struct {
	CurrentTemp int           `json:"current_temp"`
	Condition   string        `json:"condition"`
	Humidity    int           `json:"humidity"`
	Forecast    []ForecastDay `json:"forecast"`
}

// Activity is one bookable activity or attraction.
type Activity struct {
	ActivityID  string  `json:"activity_id"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Duration    string  `json:"duration"`
	Description string  `json:"description"`
}

// BookingType distinguishes flight and hotel bookings.
type BookingType string

const (
	BookingFlight BookingType = "flight"
	BookingHotel  BookingType = "hotel"
)

// Booking is a confirmed or cancelled reservation.
type Booking struct {
	BookingID      string      `json:"booking_id"`
	UserID         string      `json:"user_id"`
	Type           BookingType `json:"type"`
	FlightID       string      `json:"flight_id,omitempty"`
	FlightDetails  *Flight     `json:"flight_details,omitempty"`
	PassengerName  string      `json:"passenger_name,omitempty"`
	PassengerEmail string      `json:"passenger_email,omitempty"`
	Passengers     int         `json:"passengers,omitempty"`
	HotelID        string      `json:"hotel_id,omitempty"`
	HotelDetails   *Hotel      `json:"hotel_details,omitempty"`
	GuestName      string      `json:"guest_name,omitempty"`
	GuestEmail     string      `json:"guest_email,omitempty"`
	CheckInDate    string      `json:"check_in_date,omitempty"`
	CheckOutDate   string      `json:"check_out_date,omitempty"`
	Rooms          int         `json:"rooms,omitempty"`
	Nights         int         `json:"nights,omitempty"`
	TotalCost      float64     `json:"total_cost"`
	Currency       string      `json:"currency"`
	BookingDate    string      `json:"booking_date"`
	Status         string      `json:"status"`
}

// FlightStatus is a point-in-time status report for a flight booking.
type FlightStatus struct {
	BookingID          string `json:"booking_id"`
	FlightNumber       string `json:"flight_number"`
	Airline            string `json:"airline"`
	Origin             string `json:"origin"`
	Destination        string `json:"destination"`
	ScheduledDeparture string `json:"scheduled_departure"`
	ScheduledArrival   string `json:"scheduled_arrival"`
	Status             string `json:"status"`
	Gate               string `json:"gate"`
	Terminal           string `json:"terminal"`
}

// FlightSearchResult is the payload for SearchFlights.
type FlightSearchResult struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Flights []Flight `json:"flights"`
}

// HotelSearchResult is the payload for SearchHotels.
type HotelSearchResult struct {
	Status  string  `json:"status"`
	Message string  `json:"message,omitempty"`
	Hotels  []Hotel `json:"hotels"`
}

// BookResult is the payload for BookFlight and BookHotel.
type BookResult struct {
	Status    string  `json:"status"`
	Message   string  `json:"message,omitempty"`
	BookingID string  `json:"booking_id,omitempty"`
	TotalCost float64 `json:"total_cost,omitempty"`
	Currency  string  `json:"currency,omitempty"`
	Nights    int     `json:"nights,omitempty"`
}

// FlightStatusResult is the payload for GetFlightStatus.
type FlightStatusResult struct {
	Status       string        `json:"status"`
	Message      string        `json:"message,omitempty"`
	FlightStatus *FlightStatus `json:"flight_status,omitempty"`
}

// BookingDetailsResult is the payload for GetBookingDetails.
type BookingDetailsResult struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Booking *Booking `json:"booking,omitempty"`
}

// BookingsResult is the payload for ListBookings.
type BookingsResult struct {
	Status   string    `json:"status"`
	Message  string    `json:"message,omitempty"`
	Bookings []Booking `json:"bookings"`
}

// CancelResult is the payload for CancelBooking.
type CancelResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DestinationResult is the payload for GetDestinationInfo.
type DestinationResult struct {
	Status      string       `json:"status"`
	Message     string       `json:"message,omitempty"`
	Destination *Destination `json:"destination,omitempty"`
}

// WeatherResult is the payload for GetWeatherInfo.
type WeatherResult struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Weather *Weather `json:"weather,omitempty"`
}

// ActivitiesResult is the payload for SearchActivities.
type ActivitiesResult struct {
	Status     string     `json:"status"`
	Message    string     `json:"message,omitempty"`
	Activities []Activity `json:"activities"`
}

// Catalog is a concurrency safe in-memory travel inventory.
type Catalog struct {
	mu           sync.Mutex
	flights      map[string]*Flight
	hotels       map[string]*Hotel
	bookings     map[string]*Booking
	destinations map[string]*Destination
	weather      map[string]*Weather // keyed by city
	activities   map[string]*Activity
	counter      int

	sink *audit.Sink
	log  zerolog.Logger
	now  func() time.Time
}

// NewCatalog creates a catalog pre-populated with sample inventory and the
// demo user's existing bookings.
func NewCatalog(sink *audit.Sink, log zerolog.Logger) *Catalog {
	c := &Catalog{
		flights:      make(map[string]*Flight),
		hotels:       make(map[string]*Hotel),
		bookings:     make(map[string]*Booking),
		destinations: make(map[string]*Destination),
		weather:      make(map[string]*Weather),
		activities:   make(map[string]*Activity),
		sink:         sink,
		log:          log.With().Str("component", "travel").Logger(),
		now:          func() time.Time { return time.Now().UTC() },
	}
	c.seed()
	return c
}

func (c *Catalog) record(operation string, params map[string]any, status, summary, errMsg string) {
	if c.sink != nil {
		c.sink.Append(audit.Record{
			Timestamp:  c.now(),
			Operation:  operation,
			Parameters: params,
			Status:     status,
			Summary:    summary,
			Error:      errMsg,
		})
	}
	evt := c.log.Info()
	if status == StatusError {
		evt = c.log.Error()
	}
	evt.Str("operation", operation).Str("status", status).Msg(summary)
}

func (c *Catalog) nextBookingID() string {
	c.counter++
	return fmt.Sprintf("BK%03d", c.counter)
}

// SearchFlights returns flights that serve the requested origin or destination
// and still have enough seats.
func (c *Catalog) SearchFlights(origin, destination, departureDate string, passengers int) FlightSearchResult {
	params := map[string]any{
		"origin": origin, "destination": destination,
		"departure_date": departureDate, "passengers": passengers,
	}
	if passengers < 1 {
		passengers = 1
	}

	c.mu.Lock()
	var matches []Flight
	for _, f := range c.flights {
		if (equalFold(f.Origin, origin) || equalFold(f.OriginCity, origin) ||
			equalFold(f.Destination, destination) || equalFold(f.DestinationCity, destination)) &&
			f.AvailableSeats >= passengers {
			matches = append(matches, *f)
		}
	}
	c.mu.Unlock()

	if len(matches) == 0 {
		msg := fmt.Sprintf("No flights found from %s to %s", origin, destination)
		c.record("search_flights", params, StatusNoFlightsFound, "", msg)
		return FlightSearchResult{Status: StatusNoFlightsFound, Message: msg, Flights: []Flight{}}
	}

	sortFlights(matches)
	c.record("search_flights", params, StatusSuccess, fmt.Sprintf("Found %d flight(s)", len(matches)), "")
	return FlightSearchResult{Status: StatusSuccess, Flights: matches}
}

// BookFlight reserves seats on a flight and records a confirmed booking.
func (c *Catalog) BookFlight(userID, flightID, passengerName, passengerEmail string, passengers int) BookResult {
	params := map[string]any{
		"flight_id": flightID, "passenger_name": passengerName,
		"passenger_email": passengerEmail, "passengers": passengers,
	}
	if passengers < 1 {
		passengers = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	flight, ok := c.flights[flightID]
	if !ok {
		msg := fmt.Sprintf("Flight %s not found", flightID)
		c.record("book_flight", params, StatusFlightNotFound, "", msg)
		return BookResult{Status: StatusFlightNotFound, Message: msg}
	}
	if flight.AvailableSeats < passengers {
		msg := fmt.Sprintf("Only %d seats available", flight.AvailableSeats)
		c.record("book_flight", params, StatusInsufficientSeats, "", msg)
		return BookResult{Status: StatusInsufficientSeats, Message: msg}
	}

	details := *flight
	booking := &Booking{
		BookingID:      c.nextBookingID(),
		UserID:         userID,
		Type:           BookingFlight,
		FlightID:       flightID,
		FlightDetails:  &details,
		PassengerName:  passengerName,
		PassengerEmail: passengerEmail,
		Passengers:     passengers,
		TotalCost:      flight.Price * float64(passengers),
		Currency:       flight.Currency,
		BookingDate:    c.now().Format(time.RFC3339),
		Status:         "CONFIRMED",
	}
	flight.AvailableSeats -= passengers
	c.bookings[booking.BookingID] = booking

	c.record("book_flight", params, StatusSuccess,
		fmt.Sprintf("Flight booked successfully. Booking ID: %s", booking.BookingID), "")
	return BookResult{
		Status:    StatusSuccess,
		Message:   "Flight booked successfully",
		BookingID: booking.BookingID,
		TotalCost: booking.TotalCost,
		Currency:  booking.Currency,
	}
}

// GetFlightStatus reports the status of a flight booking.
func (c *Catalog) GetFlightStatus(bookingID string) FlightStatusResult {
	params := map[string]any{"booking_id": bookingID}

	c.mu.Lock()
	booking, ok := c.bookings[bookingID]
	c.mu.Unlock()

	if !ok {
		msg := fmt.Sprintf("Booking %s not found", bookingID)
		c.record("get_flight_status", params, StatusBookingNotFound, "", msg)
		return FlightStatusResult{Status: StatusBookingNotFound, Message: msg}
	}
	if booking.Type != BookingFlight {
		msg := "This booking is not for a flight"
		c.record("get_flight_status", params, StatusNotFlightBooking, "", msg)
		return FlightStatusResult{Status: StatusNotFlightBooking, Message: msg}
	}

	fd := booking.FlightDetails
	status := &FlightStatus{
		BookingID:          bookingID,
		FlightNumber:       fd.FlightNumber,
		Airline:            fd.Airline,
		Origin:             fd.OriginCity,
		Destination:        fd.DestinationCity,
		ScheduledDeparture: fd.DepartureTime,
		ScheduledArrival:   fd.ArrivalTime,
		Status:             "On Time",
		Gate:               "A12",
		Terminal:           "3",
	}

	c.record("get_flight_status", params, StatusSuccess,
		fmt.Sprintf("Flight status retrieved for %s", fd.FlightNumber), "")
	return FlightStatusResult{Status: StatusSuccess, FlightStatus: status}
}

// SearchHotels returns hotels in the requested city with rooms available.
func (c *Catalog) SearchHotels(city, checkInDate, checkOutDate string, guests int) HotelSearchResult {
	params := map[string]any{
		"city": city, "check_in_date": checkInDate,
		"check_out_date": checkOutDate, "guests": guests,
	}

	c.mu.Lock()
	var matches []Hotel
	for _, h := range c.hotels {
		if equalFold(h.City, city) && h.AvailableRooms >= 1 {
			matches = append(matches, *h)
		}
	}
	c.mu.Unlock()

	if len(matches) == 0 {
		msg := fmt.Sprintf("No hotels found in %s", city)
		c.record("search_hotels", params, StatusNoHotelsFound, "", msg)
		return HotelSearchResult{Status: StatusNoHotelsFound, Message: msg, Hotels: []Hotel{}}
	}

	sortHotels(matches)
	c.record("search_hotels", params, StatusSuccess, fmt.Sprintf("Found %d hotel(s)", len(matches)), "")
	return HotelSearchResult{Status: StatusSuccess, Hotels: matches}
}

// BookHotel reserves rooms and records a confirmed booking. Dates are
// YYYY-MM-DD and the stay must be at least one night.
func (c *Catalog) BookHotel(userID, hotelID, guestName, guestEmail, checkInDate, checkOutDate string, rooms int) BookResult {
	params := map[string]any{
		"hotel_id": hotelID, "guest_name": guestName, "guest_email": guestEmail,
		"check_in_date": checkInDate, "check_out_date": checkOutDate, "rooms": rooms,
	}
	if rooms < 1 {
		rooms = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	hotel, ok := c.hotels[hotelID]
	if !ok {
		msg := fmt.Sprintf("Hotel %s not found", hotelID)
		c.record("book_hotel", params, StatusHotelNotFound, "", msg)
		return BookResult{Status: StatusHotelNotFound, Message: msg}
	}
	if hotel.AvailableRooms < rooms {
		msg := fmt.Sprintf("Only %d rooms available", hotel.AvailableRooms)
		c.record("book_hotel", params, StatusInsufficientRooms, "", msg)
		return BookResult{Status: StatusInsufficientRooms, Message: msg}
	}

	nights, err := stayNights(checkInDate, checkOutDate)
	if err != nil || nights <= 0 {
		msg := "Check-out date must be after check-in date"
		c.record("book_hotel", params, StatusInvalidDates, "", msg)
		return BookResult{Status: StatusInvalidDates, Message: msg}
	}

	details := *hotel
	booking := &Booking{
		BookingID:    c.nextBookingID(),
		UserID:       userID,
		Type:         BookingHotel,
		HotelID:      hotelID,
		HotelDetails: &details,
		GuestName:    guestName,
		GuestEmail:   guestEmail,
		CheckInDate:  checkInDate,
		CheckOutDate: checkOutDate,
		Rooms:        rooms,
		Nights:       nights,
		TotalCost:    hotel.PricePerNight * float64(nights) * float64(rooms),
		Currency:     hotel.Currency,
		BookingDate:  c.now().Format(time.RFC3339),
		Status:       "CONFIRMED",
	}
	hotel.AvailableRooms -= rooms
	c.bookings[booking.BookingID] = booking

	c.record("book_hotel", params, StatusSuccess,
		fmt.Sprintf("Hotel booked successfully. Booking ID: %s", booking.BookingID), "")
	return BookResult{
		Status:    StatusSuccess,
		Message:   "Hotel booked successfully",
		BookingID: booking.BookingID,
		TotalCost: booking.TotalCost,
		Currency:  booking.Currency,
		Nights:    nights,
	}
}

// GetBookingDetails returns the full record for one booking.
func (c *Catalog) GetBookingDetails(bookingID string) BookingDetailsResult {
	params := map[string]any{"booking_id": bookingID}

	c.mu.Lock()
	booking, ok := c.bookings[bookingID]
	var copied Booking
	if ok {
		copied = *booking
	}
	c.mu.Unlock()

	if !ok {
		msg := fmt.Sprintf("Booking %s not found", bookingID)
		c.record("get_booking_details", params, StatusBookingNotFound, "", msg)
		return BookingDetailsResult{Status: StatusBookingNotFound, Message: msg}
	}

	c.record("get_booking_details", params, StatusSuccess,
		fmt.Sprintf("Booking details retrieved for %s", bookingID), "")
	return BookingDetailsResult{Status: StatusSuccess, Booking: &copied}
}

// ListBookings returns all bookings for a user, newest ID last.
func (c *Catalog) ListBookings(userID string) BookingsResult {
	params := map[string]any{"user_id": userID}

	c.mu.Lock()
	var bookings []Booking
	for _, b := range c.bookings {
		if b.UserID == userID {
			bookings = append(bookings, *b)
		}
	}
	c.mu.Unlock()

	if len(bookings) == 0 {
		c.record("list_user_bookings", params, StatusNoBookingsFound,
			fmt.Sprintf("No bookings found for user %s", userID), "")
		return BookingsResult{Status: StatusNoBookingsFound, Message: "No bookings found", Bookings: []Booking{}}
	}

	sortBookings(bookings)
	c.record("list_user_bookings", params, StatusSuccess,
		fmt.Sprintf("Found %d booking(s)", len(bookings)), "")
	return BookingsResult{Status: StatusSuccess, Bookings: bookings}
}

// CancelBooking marks a booking cancelled and restores the underlying
// inventory. Cancelling twice is rejected.
func (c *Catalog) CancelBooking(bookingID string) CancelResult {
	params := map[string]any{"booking_id": bookingID}

	c.mu.Lock()
	defer c.mu.Unlock()

	booking, ok := c.bookings[bookingID]
	if !ok {
		msg := fmt.Sprintf("Booking %s not found", bookingID)
		c.record("cancel_booking", params, StatusBookingNotFound, "", msg)
		return CancelResult{Status: StatusBookingNotFound, Message: msg}
	}
	if booking.Status == "CANCELLED" {
		msg := "Booking is already cancelled"
		c.record("cancel_booking", params, StatusAlreadyCancelled, "", msg)
		return CancelResult{Status: StatusAlreadyCancelled, Message: msg}
	}

	booking.Status = "CANCELLED"
	switch booking.Type {
	case BookingFlight:
		if f, ok := c.flights[booking.FlightID]; ok {
			f.AvailableSeats += booking.Passengers
		}
	case BookingHotel:
		if h, ok := c.hotels[booking.HotelID]; ok {
			h.AvailableRooms += booking.Rooms
		}
	}

	msg := fmt.Sprintf("Booking %s cancelled successfully", bookingID)
	c.record("cancel_booking", params, StatusSuccess, msg, "")
	return CancelResult{Status: StatusSuccess, Message: msg}
}

// GetDestinationInfo returns the travel guide entry for a city.
func (c *Catalog) GetDestinationInfo(city string) DestinationResult {
	params := map[string]any{"city": city}

	c.mu.Lock()
	var found *Destination
	for _, d := range c.destinations {
		if equalFold(d.City, city) {
			copied := *d
			found = &copied
			break
		}
	}
	c.mu.Unlock()

	if found == nil {
		msg := fmt.Sprintf("No information found for %s", city)
		c.record("get_destination_info", params, StatusDestinationNotFound, "", msg)
		return DestinationResult{Status: StatusDestinationNotFound, Message: msg}
	}

	c.record("get_destination_info", params, StatusSuccess,
		fmt.Sprintf("Destination info retrieved for %s", city), "")
	return DestinationResult{Status: StatusSuccess, Destination: found}
}

// GetWeatherInfo returns current conditions and the short forecast for a city.
func (c *Catalog) GetWeatherInfo(city string) WeatherResult {
	params := map[string]any{"city": city}

	c.mu.Lock()
	var found *Weather
	for weatherCity, w := range c.weather {
		if equalFold(weatherCity, city) {
			copied := *w
			found = &copied
			break
		}
	}
	c.mu.Unlock()

	if found == nil {
		msg := fmt.Sprintf("No weather data found for %s", city)
		c.record("get_weather_info", params, StatusWeatherNotFound, "", msg)
		return WeatherResult{Status: StatusWeatherNotFound, Message: msg}
	}

	c.record("get_weather_info", params, StatusSuccess,
		fmt.Sprintf("Weather info retrieved for %s", city), "")
	return WeatherResult{Status: StatusSuccess, Weather: found}
}

// SearchActivities returns activities in a city, optionally filtered by type.
func (c *Catalog) SearchActivities(city, activityType string) ActivitiesResult {
	params := map[string]any{"city": city, "activity_type": activityType}

	c.mu.Lock()
	var matches []Activity
	for _, a := range c.activities {
		if equalFold(a.City, city) && (activityType == "" || equalFold(a.Type, activityType)) {
			matches = append(matches, *a)
		}
	}
	c.mu.Unlock()

	if len(matches) == 0 {
		msg := fmt.Sprintf("No activities found in %s", city)
		c.record("search_activities", params, StatusNoActivitiesFound, "", msg)
		return ActivitiesResult{Status: StatusNoActivitiesFound, Message: msg, Activities: []Activity{}}
	}

	sortActivities(matches)
	c.record("search_activities", params, StatusSuccess,
		fmt.Sprintf("Found %d activity(ies)", len(matches)), "")
	return ActivitiesResult{Status: StatusSuccess, Activities: matches}
}
