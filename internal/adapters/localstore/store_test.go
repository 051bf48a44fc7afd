package localstore_test

import (
	"testing"

	"hotelbook/internal/adapters/localstore"
)

type blob struct {
	Theme string `json:"theme"`
}

func TestStore_RoundTrip(t *testing.T) {
	s, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if ok, err := s.Get("theme", &blob{}); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := s.Set("theme", blob{Theme: "dark"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var got blob
	ok, err := s.Get("theme", &got)
	if err != nil || !ok || got.Theme != "dark" {
		t.Fatalf("Get: ok=%v err=%v got=%+v", ok, err, got)
	}

	if err := s.Del("theme"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if ok, _ := s.Get("theme", &got); ok {
		t.Fatalf("key survived Del")
	}
	// deleting again is fine
	if err := s.Del("theme"); err != nil {
		t.Fatalf("second Del: %v", err)
	}
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s1, err := localstore.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s1.Set("bookings", []string{"a", "b"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	s2, err := localstore.New(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	var got []string
	ok, err := s2.Get("bookings", &got)
	if err != nil || !ok || len(got) != 2 {
		t.Fatalf("reopen Get: ok=%v err=%v got=%v", ok, err, got)
	}
}
