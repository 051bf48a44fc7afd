package app

import (
	"fmt"
	"strconv"
	"strings"

	"hotelbook/internal/domain"
)

const (
	emptyQuestionReply = "Please ask something."
	noHotelsReply      = "No hotels are available right now."
	fallbackReply      = "Sorry, I didn't understand. Try: 'hotels in Delhi', 'cheapest hotel', 'best hotel'."
	notSignedInReply   = "You are not signed in."
)

type answerInput struct {
	question string // lowercased, trimmed
	hotels   []domain.Hotel
	bookings []domain.BookingRecord
	user     *domain.User
}

type rule struct {
	match func(q string) bool
	reply func(in answerInput) string
}

// Responder answers canned questions about hotels and bookings. Rules are an
// ordered list of (predicate, responder) pairs evaluated in priority order;
// the first match wins, and the matching order is part of the contract.
type Responder struct {
	rules []rule
}

func NewResponder() *Responder {
	contains := func(subs ...string) func(string) bool {
		return func(q string) bool {
			for _, s := range subs {
				if strings.Contains(q, s) {
					return true
				}
			}
			return false
		}
	}
	return &Responder{rules: []rule{
		{contains("how many hotels"), replyHotelCount},
		{contains("hotels in"), replyHotelsInCity},
		{contains("cheapest"), replyCheapest},
		{contains("expensive"), replyMostExpensive},
		{contains("best", "top"), replyTopRated},
		{contains("booking"), replyBookingCount},
		{contains("user details", "my details"), replyUserDetails},
	}}
}

// Answer never fails: an empty question yields a fixed prompt and anything
// unmatched yields the fallback string.
func (r *Responder) Answer(question string, hotels []domain.Hotel, bookings []domain.BookingRecord, user *domain.User) string {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return emptyQuestionReply
	}
	in := answerInput{question: q, hotels: hotels, bookings: bookings, user: user}
	for _, rl := range r.rules {
		if rl.match(q) {
			return rl.reply(in)
		}
	}
	return fallbackReply
}

func replyHotelCount(in answerInput) string {
	return fmt.Sprintf("There are %d hotels available.", len(in.hotels))
}

func replyHotelsInCity(in answerInput) string {
	city := strings.TrimSpace(in.question[strings.Index(in.question, "hotels in")+len("hotels in"):])
	n := 0
	for _, h := range in.hotels {
		if strings.Contains(strings.ToLower(h.City), city) {
			n++
		}
	}
	if n > 0 {
		return fmt.Sprintf("Found %d hotel(s) in %s.", n, city)
	}
	return fmt.Sprintf("No hotels found in %s.", city)
}

func replyCheapest(in answerInput) string {
	h, ok := pickHotel(in.hotels, func(a, b domain.Hotel) bool { return a.Price < b.Price })
	if !ok {
		return noHotelsReply
	}
	return fmt.Sprintf("Cheapest hotel is %q costing ₹%s.", h.Name, formatNumber(h.Price))
}

func replyMostExpensive(in answerInput) string {
	h, ok := pickHotel(in.hotels, func(a, b domain.Hotel) bool { return a.Price > b.Price })
	if !ok {
		return noHotelsReply
	}
	return fmt.Sprintf("Most expensive hotel is %q costing ₹%s.", h.Name, formatNumber(h.Price))
}

func replyTopRated(in answerInput) string {
	h, ok := pickHotel(in.hotels, func(a, b domain.Hotel) bool { return ratingOf(a) > ratingOf(b) })
	if !ok {
		return noHotelsReply
	}
	return fmt.Sprintf("Top hotel is %q with rating %s.", h.Name, formatNumber(ratingOf(h)))
}

func replyBookingCount(in answerInput) string {
	return fmt.Sprintf("You have %d booking(s).", len(in.bookings))
}

func replyUserDetails(in answerInput) string {
	if in.user == nil {
		return notSignedInReply
	}
	return fmt.Sprintf("User Details:\nName: %s\nEmail: %s", in.user.Name, in.user.Email)
}

// pickHotel returns the first hotel strictly better than every earlier one,
// so ties resolve to the first encountered in collection order.
func pickHotel(hs []domain.Hotel, better func(a, b domain.Hotel) bool) (domain.Hotel, bool) {
	if len(hs) == 0 {
		return domain.Hotel{}, false
	}
	best := hs[0]
	for _, h := range hs[1:] {
		if better(h, best) {
			best = h
		}
	}
	return best, true
}

// formatNumber renders whole values without decimals (500, not 500.00).
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
