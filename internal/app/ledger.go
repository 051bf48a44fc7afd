package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"hotelbook/internal/domain"
)

const bookingsKey = "bookings"

// Ledger is the client-local booking ledger: an ordered list of booking
// records persisted as one JSON blob on every mutation. It is deliberately
// not backed by the hotel store; bookings are device-local by contract.
type Ledger struct {
	mu    sync.Mutex
	store domain.BlobStore
	items []domain.BookingRecord
}

// NewLedger loads any previously persisted ledger from the blob store.
func NewLedger(store domain.BlobStore) (*Ledger, error) {
	l := &Ledger{store: store}
	if _, err := store.Get(bookingsKey, &l.items); err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	return l, nil
}

// Add assigns a fresh identifier, computes total = price × rooms, appends the
// record and persists the whole ledger. The stored record is returned.
func (l *Ledger) Add(in domain.BookingInput) (domain.BookingRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := domain.BookingRecord{
		ID:           newBookingID(),
		BookingInput: in,
		Total:        in.Price * float64(in.Rooms),
		CreatedAt:    time.Now().UTC(),
	}
	l.items = append(l.items, rec)
	if err := l.store.Set(bookingsKey, l.items); err != nil {
		l.items = l.items[:len(l.items)-1]
		return domain.BookingRecord{}, fmt.Errorf("persist bookings: %w", err)
	}
	return rec, nil
}

// Remove deletes the record with the given identifier. Removing an absent
// identifier is a no-op, not an error.
func (l *Ledger) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.items[:0:0]
	for _, rec := range l.items {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(l.items) {
		return nil
	}
	prev := l.items
	l.items = kept
	if err := l.store.Set(bookingsKey, l.items); err != nil {
		l.items = prev
		return fmt.Errorf("persist bookings: %w", err)
	}
	return nil
}

// List returns a snapshot of the ledger in insertion order.
func (l *Ledger) List() []domain.BookingRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.BookingRecord, len(l.items))
	copy(out, l.items)
	return out
}

// newBookingID combines a millisecond timestamp with a random suffix so two
// bookings created in the same instant still get distinct identifiers.
func newBookingID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
