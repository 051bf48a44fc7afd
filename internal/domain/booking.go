package domain

import "time"

// BookingInput carries everything needed to create a booking: guest details,
// stay details, and a denormalized snapshot of the hotel at booking time.
type BookingInput struct {
	HotelID    string  `json:"hotelId"`
	HotelName  string  `json:"hotelName"`
	HotelImage string  `json:"hotelImage,omitempty"`
	City       string  `json:"city"`
	Price      float64 `json:"price"`
	GuestName  string  `json:"guestName"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	CheckIn    string  `json:"checkIn"`  // YYYY-MM-DD
	CheckOut   string  `json:"checkOut"` // YYYY-MM-DD
	Rooms      int     `json:"rooms"`
	Adults     int     `json:"adults"`
	Children   int     `json:"children"`
}

// BookingRecord is a stored booking. Records are ephemeral to the client-local
// ledger and never synchronized with the hotel store.
type BookingRecord struct {
	ID string `json:"id"`
	BookingInput
	Total     float64   `json:"totalAmount"` // price × rooms
	CreatedAt time.Time `json:"createdAt"`
}
