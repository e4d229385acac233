package travel

import (
	"sort"
	"strings"
	"time"
)

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func sortFlights(flights []Flight) {
	sort.Slice(flights, func(i, j int) bool { return flights[i].FlightID < flights[j].FlightID })
}

func sortHotels(hotels []Hotel) {
	sort.Slice(hotels, func(i, j int) bool { return hotels[i].HotelID < hotels[j].HotelID })
}

func sortBookings(bookings []Booking) {
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].BookingID < bookings[j].BookingID })
}

func sortActivities(activities []Activity) {
	sort.Slice(activities, func(i, j int) bool { return activities[i].ActivityID < activities[j].ActivityID })
}

// stayNights returns the number of nights between two YYYY-MM-DD dates.
func stayNights(checkIn, checkOut string) (int, error) {
	const layout = "2006-01-02"
	in, err := time.Parse(layout, strings.TrimSpace(checkIn))
	if err != nil {
		return 0, err
	}
	out, err := time.Parse(layout, strings.TrimSpace(checkOut))
	if err != nil {
		return 0, err
	}
	return int(out.Sub(in).Hours() / 24), nil
}

// seed loads the sample inventory and the demo user's standing bookings.
func (c *Catalog) seed() {
	flights := []*Flight{
		{
			FlightID: "FL001", Airline: "Emirates", FlightNumber: "EK234",
			Origin: "BOM", OriginCity: "Mumbai", Destination: "DXB", DestinationCity: "Dubai",
			DepartureTime: "2024-02-15T14:30:00", ArrivalTime: "2024-02-15T17:45:00",
			Duration: "3h 15m", Price: 45000.0, Currency: "INR",
			AvailableSeats: 15, Aircraft: "Boeing 777",
		},
		{
			FlightID: "FL002", Airline: "Air India", FlightNumber: "AI131",
			Origin: "DEL", OriginCity: "Delhi", Destination: "BOM", DestinationCity: "Mumbai",
			DepartureTime: "2024-02-16T08:15:00", ArrivalTime: "2024-02-16T10:30:00",
			Duration: "2h 15m", Price: 8500.0, Currency: "INR",
			AvailableSeats: 23, Aircraft: "Airbus A320",
		},
		{
			FlightID: "FL003", Airline: "IndiGo", FlightNumber: "6E542",
			Origin: "BLR", OriginCity: "Bangalore", Destination: "GOI", DestinationCity: "Goa",
			DepartureTime: "2024-02-17T12:00:00", ArrivalTime: "2024-02-17T13:15:00",
			Duration: "1h 15m", Price: 6200.0, Currency: "INR",
			AvailableSeats: 8, Aircraft: "Airbus A320neo",
		},
	}
	for _, f := range flights {
		c.flights[f.FlightID] = f
	}

	hotels := []*Hotel{
		{
			HotelID: "HTL001", Name: "Taj Mahal Palace", City: "Mumbai", Country: "India",
			Rating: 5, PricePerNight: 25000.0, Currency: "INR",
			Amenities:      []string{"WiFi", "Pool", "Spa", "Restaurant", "Room Service"},
			AvailableRooms: 12, RoomType: "Deluxe Ocean View", CheckIn: "15:00", CheckOut: "12:00",
		},
		{
			HotelID: "HTL002", Name: "The Leela Palace", City: "Bangalore", Country: "India",
			Rating: 5, PricePerNight: 18000.0, Currency: "INR",
			Amenities:      []string{"WiFi", "Pool", "Gym", "Restaurant", "Business Center"},
			AvailableRooms: 8, RoomType: "Executive Suite", CheckIn: "14:00", CheckOut: "11:00",
		},
		{
			HotelID: "HTL003", Name: "Grand Hyatt Goa", City: "Goa", Country: "India",
			Rating: 4, PricePerNight: 12000.0, Currency: "INR",
			Amenities:      []string{"WiFi", "Beach Access", "Pool", "Restaurant", "Bar"},
			AvailableRooms: 20, RoomType: "Garden View Room", CheckIn: "15:00", CheckOut: "12:00",
		},
		{
			HotelID: "HTL004", Name: "Burj Al Arab", City: "Dubai", Country: "UAE",
			Rating: 5, PricePerNight: 2500.0, Currency: "AED",
			Amenities:      []string{"WiFi", "Pool", "Spa", "Restaurant", "Butler Service", "Beach Access"},
			AvailableRooms: 8, RoomType: "Deluxe Suite", CheckIn: "15:00", CheckOut: "12:00",
		},
	}
	for _, h := range hotels {
		c.hotels[h.HotelID] = h
	}

	destinations := []*Destination{
		{
			DestinationID: "DEST001", City: "Dubai", Country: "UAE",
			Description:        "A modern metropolis known for luxury shopping, ultramodern architecture and lively nightlife scene.",
			PopularAttractions: []string{"Burj Khalifa", "Dubai Mall", "Palm Jumeirah", "Dubai Fountain"},
			BestTimeToVisit:    "November to March", Currency: "AED", Language: "Arabic, English",
		},
		{
			DestinationID: "DEST002", City: "Goa", Country: "India",
			Description:        "Known for its pristine beaches, vibrant nightlife, and Portuguese colonial architecture.",
			PopularAttractions: []string{"Baga Beach", "Basilica of Bom Jesus", "Dudhsagar Falls", "Fort Aguada"},
			BestTimeToVisit:    "November to February", Currency: "INR", Language: "Hindi, English, Konkani",
		},
	}
	for _, d := range destinations {
		c.destinations[d.DestinationID] = d
	}

	c.weather["Dubai"] = &Weather{
		CurrentTemp: 28, Condition: "Sunny", Humidity: 65,
		Forecast: []ForecastDay{
			{Date: "2024-02-15", High: 30, Low: 22, Condition: "Sunny"},
			{Date: "2024-02-16", High: 29, Low: 21, Condition: "Partly Cloudy"},
			{Date: "2024-02-17", High: 31, Low: 23, Condition: "Sunny"},
		},
	}
	c.weather["Goa"] = &Weather{
		CurrentTemp: 32, Condition: "Partly Cloudy", Humidity: 78,
		Forecast: []ForecastDay{
			{Date: "2024-02-15", High: 34, Low: 24, Condition: "Sunny"},
			{Date: "2024-02-16", High: 33, Low: 25, Condition: "Partly Cloudy"},
			{Date: "2024-02-17", High: 32, Low: 24, Condition: "Cloudy"},
		},
	}

	activities := []*Activity{
		{
			ActivityID: "ACT001", Name: "Burj Khalifa Sky Deck", City: "Dubai", Type: "Sightseeing",
			Price: 450.0, Currency: "AED", Duration: "2 hours",
			Description: "Visit the world's tallest building and enjoy panoramic city views.",
		},
		{
			ActivityID: "ACT002", Name: "Dolphin Watching", City: "Goa", Type: "Adventure",
			Price: 1500.0, Currency: "INR", Duration: "3 hours",
			Description: "Boat trip to spot dolphins in their natural habitat.",
		},
	}
	for _, a := range activities {
		c.activities[a.ActivityID] = a
	}

	const demoUser = "shubham"
	fl1, fl2 := *flights[0], *flights[1]
	ht4 := *hotels[3]
	bookings := []*Booking{
		{
			BookingID: "BK001", UserID: demoUser, Type: BookingFlight,
			FlightID: "FL001", FlightDetails: &fl1,
			PassengerName: "Shubham", PassengerEmail: "shubham@example.com", Passengers: 1,
			TotalCost: 45000.0, Currency: "INR",
			BookingDate: "2024-02-10T10:30:00", Status: "CONFIRMED",
		},
		{
			BookingID: "BK002", UserID: demoUser, Type: BookingHotel,
			HotelID: "HTL004", HotelDetails: &ht4,
			GuestName: "Shubham", GuestEmail: "shubham@example.com",
			CheckInDate: "2024-02-15", CheckOutDate: "2024-02-17", Rooms: 1, Nights: 2,
			TotalCost: 5000.0, Currency: "AED",
			BookingDate: "2024-02-10T11:15:00", Status: "CONFIRMED",
		},
		{
			BookingID: "BK003", UserID: demoUser, Type: BookingFlight,
			FlightID: "FL002", FlightDetails: &fl2,
			PassengerName: "Shubham", PassengerEmail: "shubham@example.com", Passengers: 1,
			TotalCost: 8500.0, Currency: "INR",
			BookingDate: "2024-02-11T14:20:00", Status: "CONFIRMED",
		},
	}
	for _, b := range bookings {
		c.bookings[b.BookingID] = b
	}
	c.counter = 3
}
