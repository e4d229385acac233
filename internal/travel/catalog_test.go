package travel

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/kkrishnan90/mmt-live-api/internal/audit"
)

func newTestCatalog() *Catalog {
	return NewCatalog(audit.NewSink(100), zerolog.Nop())
}

func TestSearchFlights(t *testing.T) {
	c := newTestCatalog()

	res := c.SearchFlights("Mumbai", "Dubai", "2024-02-15", 1)
	if res.Status != StatusSuccess {
		t.Fatalf("expected SUCCESS, got %s", res.Status)
	}
	found := false
	for _, f := range res.Flights {
		if f.FlightID == "FL001" {
			found = true
		}
	}
	if !found {
		t.Error("expected FL001 in Mumbai to Dubai results")
	}

	res = c.SearchFlights("Pune", "Nagpur", "2024-02-15", 1)
	if res.Status != StatusNoFlightsFound {
		t.Errorf("expected NO_FLIGHTS_FOUND, got %s", res.Status)
	}
	if res.Flights == nil {
		t.Error("expected empty slice, not nil")
	}
}

func TestBookFlight(t *testing.T) {
	c := newTestCatalog()

	res := c.BookFlight("traveller1", "FL003", "Asha", "asha@example.com", 2)
	if res.Status != StatusSuccess {
		t.Fatalf("expected SUCCESS, got %s: %s", res.Status, res.Message)
	}
	if res.BookingID != "BK004" {
		t.Errorf("expected sequential booking id BK004, got %s", res.BookingID)
	}
	if res.TotalCost != 12400.0 {
		t.Errorf("expected total cost 12400.0, got %f", res.TotalCost)
	}

	// FL003 started with 8 seats; booking 2 leaves 6, so 7 must be rejected.
	res = c.BookFlight("traveller1", "FL003", "Asha", "asha@example.com", 7)
	if res.Status != StatusInsufficientSeats {
		t.Errorf("expected INSUFFICIENT_SEATS, got %s", res.Status)
	}

	res = c.BookFlight("traveller1", "FL999", "Asha", "asha@example.com", 1)
	if res.Status != StatusFlightNotFound {
		t.Errorf("expected FLIGHT_NOT_FOUND, got %s", res.Status)
	}
}

func TestGetFlightStatus(t *testing.T) {
	c := newTestCatalog()

	res := c.GetFlightStatus("BK001")
	if res.Status != StatusSuccess {
		t.Fatalf("expected SUCCESS, got %s", res.Status)
	}
	if res.FlightStatus.FlightNumber != "EK234" {
		t.Errorf("expected flight EK234, got %s", res.FlightStatus.FlightNumber)
	}

	// BK002 is a hotel booking.
	res = c.GetFlightStatus("BK002")
	if res.Status != StatusNotFlightBooking {
		t.Errorf("expected NOT_FLIGHT_BOOKING, got %s", res.Status)
	}

	res = c.GetFlightStatus("BK999")
	if res.Status != StatusBookingNotFound {
		t.Errorf("expected BOOKING_NOT_FOUND, got %s", res.Status)
	}
}

func TestBookHotel(t *testing.T) {
	c := newTestCatalog()

	tests := []struct {
		name       string
		hotelID    string
		checkIn    string
		checkOut   string
		rooms      int
		wantStatus string
		wantNights int
	}{
		{"two nights", "HTL003", "2024-03-01", "2024-03-03", 1, StatusSuccess, 2},
		{"same day", "HTL003", "2024-03-01", "2024-03-01", 1, StatusInvalidDates, 0},
		{"reversed dates", "HTL003", "2024-03-05", "2024-03-01", 1, StatusInvalidDates, 0},
		{"garbage date", "HTL003", "first of march", "2024-03-03", 1, StatusInvalidDates, 0},
		{"unknown hotel", "HTL999", "2024-03-01", "2024-03-03", 1, StatusHotelNotFound, 0},
		{"too many rooms", "HTL002", "2024-03-01", "2024-03-03", 50, StatusInsufficientRooms, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.BookHotel("traveller1", tt.hotelID, "Asha", "asha@example.com", tt.checkIn, tt.checkOut, tt.rooms)
			if res.Status != tt.wantStatus {
				t.Errorf("expected %s, got %s: %s", tt.wantStatus, res.Status, res.Message)
			}
			if res.Nights != tt.wantNights {
				t.Errorf("expected %d nights, got %d", tt.wantNights, res.Nights)
			}
		})
	}
}

func TestListBookings(t *testing.T) {
	c := newTestCatalog()

	res := c.ListBookings("shubham")
	if res.Status != StatusSuccess {
		t.Fatalf("expected SUCCESS, got %s", res.Status)
	}
	if len(res.Bookings) != 3 {
		t.Errorf("expected 3 seeded bookings, got %d", len(res.Bookings))
	}

	res = c.ListBookings("nobody")
	if res.Status != StatusNoBookingsFound {
		t.Errorf("expected NO_BOOKINGS_FOUND, got %s", res.Status)
	}
	if res.Bookings == nil {
		t.Error("expected empty slice, not nil")
	}
}

func TestCancelBooking(t *testing.T) {
	c := newTestCatalog()

	book := c.BookFlight("traveller1", "FL002", "Asha", "asha@example.com", 3)
	if book.Status != StatusSuccess {
		t.Fatalf("setup booking failed: %s", book.Status)
	}

	res := c.CancelBooking(book.BookingID)
	if res.Status != StatusSuccess {
		t.Fatalf("expected SUCCESS, got %s", res.Status)
	}

	// Seats restored, so the original 23 are bookable again.
	search := c.SearchFlights("Delhi", "Mumbai", "2024-02-16", 23)
	if search.Status != StatusSuccess {
		t.Errorf("expected seats restored after cancellation, got %s", search.Status)
	}

	res = c.CancelBooking(book.BookingID)
	if res.Status != StatusAlreadyCancelled {
		t.Errorf("expected ALREADY_CANCELLED, got %s", res.Status)
	}

	res = c.CancelBooking("BK999")
	if res.Status != StatusBookingNotFound {
		t.Errorf("expected BOOKING_NOT_FOUND, got %s", res.Status)
	}
}

func TestGetDestinationInfo(t *testing.T) {
	c := newTestCatalog()

	res := c.GetDestinationInfo("dubai")
	if res.Status != StatusSuccess {
		t.Fatalf("expected SUCCESS, got %s: %s", res.Status, res.Message)
	}
	if res.Destination == nil || res.Destination.DestinationID != "DEST001" {
		t.Fatalf("expected DEST001 for Dubai, got %+v", res.Destination)
	}
	if len(res.Destination.PopularAttractions) == 0 {
		t.Error("expected popular attractions for Dubai")
	}

	res = c.GetDestinationInfo("Atlantis")
	if res.Status != StatusDestinationNotFound {
		t.Errorf("expected DESTINATION_NOT_FOUND, got %s", res.Status)
	}
	if res.Destination != nil {
		t.Error("expected nil destination for unknown city")
	}
}

func TestGetWeatherInfo(t *testing.T) {
	c := newTestCatalog()

	res := c.GetWeatherInfo("Dubai")
	if res.Status != StatusSuccess {
		t.Fatalf("expected SUCCESS, got %s: %s", res.Status, res.Message)
	}
	if res.Weather == nil || res.Weather.Condition != "Sunny" {
		t.Fatalf("expected sunny Dubai, got %+v", res.Weather)
	}
	if len(res.Weather.Forecast) != 3 {
		t.Errorf("expected 3 forecast days, got %d", len(res.Weather.Forecast))
	}

	res = c.GetWeatherInfo("Atlantis")
	if res.Status != StatusWeatherNotFound {
		t.Errorf("expected WEATHER_NOT_FOUND, got %s", res.Status)
	}
}

func TestSearchActivities(t *testing.T) {
	c := newTestCatalog()

	res := c.SearchActivities("Goa", "")
	if res.Status != StatusSuccess {
		t.Fatalf("expected SUCCESS, got %s: %s", res.Status, res.Message)
	}
	found := false
	for _, a := range res.Activities {
		if a.ActivityID == "ACT002" {
			found = true
		}
	}
	if !found {
		t.Error("expected ACT002 in Goa results")
	}

	res = c.SearchActivities("Dubai", "Sightseeing")
	if res.Status != StatusSuccess {
		t.Fatalf("expected SUCCESS, got %s", res.Status)
	}
	for _, a := range res.Activities {
		if a.Type != "Sightseeing" {
			t.Errorf("expected only Sightseeing activities, got %s", a.Type)
		}
	}

	// A type with no matches in the city still reports the empty result.
	res = c.SearchActivities("Dubai", "Adventure")
	if res.Status != StatusNoActivitiesFound {
		t.Errorf("expected NO_ACTIVITIES_FOUND, got %s", res.Status)
	}
	if res.Activities == nil {
		t.Error("expected empty slice, not nil")
	}

	res = c.SearchActivities("Atlantis", "")
	if res.Status != StatusNoActivitiesFound {
		t.Errorf("expected NO_ACTIVITIES_FOUND for unknown city, got %s", res.Status)
	}
}
