// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"hotelbook/internal/adapters/observability"
	"hotelbook/internal/app"
	"hotelbook/internal/domain"
)

type Handlers struct {
	Q        *app.QueryService
	Ledger   *app.Ledger
	Sessions *app.SessionService
	Bot      *app.Responder

	validate *validator.Validate
}

func NewHandlers(q *app.QueryService, l *app.Ledger, s *app.SessionService, bot *app.Responder) *Handlers {
	return &Handlers{Q: q, Ledger: l, Sessions: s, Bot: bot, validate: validator.New()}
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	// legacy passthrough route: the whole collection, unfiltered
	s.mux.Get("/find", h.findHotels)

	s.mux.Get("/v1/hotels", h.searchHotels)
	s.mux.Get("/v1/hotels/{id}", h.getHotel)

	s.mux.Post("/v1/bookings", h.createBooking)
	s.mux.Get("/v1/bookings", h.listBookings)
	s.mux.Delete("/v1/bookings/{id}", h.cancelBooking)

	s.mux.Post("/v1/chat", h.chat)

	s.mux.Post("/v1/auth/register", h.register)
	s.mux.Post("/v1/auth/login", h.login)
	s.mux.Post("/v1/auth/logout", h.logout)
	s.mux.Get("/v1/auth/me", h.me)

	s.mux.Get("/v1/theme", h.getTheme)
	s.mux.Put("/v1/theme", h.setTheme)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCachedJSON handles the ETag/304 dance shared by the hotel read routes.
func writeCachedJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// ---- hotels ----

func (h *Handlers) findHotels(w http.ResponseWriter, r *http.Request) {
	hs, err := h.Q.ListHotels(r.Context())
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Unavailable", "hotel collection could not be fetched")
		return
	}
	if hs == nil {
		hs = []domain.Hotel{}
	}
	writeCachedJSON(w, r, hs)
}

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.FilterSpec{
		City:  q.Get("city"),
		Name:  q.Get("name"),
		Price: q.Get("price"),
	}
	key := domain.ParseSortKey(q.Get("sort"))

	hs, err := h.Q.SearchHotels(r.Context(), f, key)
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Unavailable", "hotel collection could not be fetched")
		return
	}
	if hs == nil {
		hs = []domain.Hotel{}
	}
	writeCachedJSON(w, r, hs)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	hotel, err := h.Q.GetHotel(r.Context(), id)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	writeCachedJSON(w, r, hotel)
}

// ---- bookings ----

type bookingRequest struct {
	HotelID   string `json:"hotelId" validate:"required"`
	GuestName string `json:"guestName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	CheckIn   string `json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut  string `json:"checkOut" validate:"required,datetime=2006-01-02"`
	Rooms     int    `json:"rooms" validate:"required,min=1"`
	Adults    int    `json:"adults" validate:"required,min=1"`
	Children  int    `json:"children" validate:"min=0"`
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Validation failed", err.Error())
		return
	}
	in, _ := time.Parse("2006-01-02", req.CheckIn)
	out, _ := time.Parse("2006-01-02", req.CheckOut)
	if !out.After(in) {
		writeProblem(w, http.StatusUnprocessableEntity, "Validation failed", "check-out must be after check-in")
		return
	}

	// snapshot the hotel server-side; the client never dictates prices
	hotel, err := h.Q.GetHotel(r.Context(), req.HotelID)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	image := ""
	if len(hotel.Images) > 0 {
		image = hotel.Images[0]
	}
	rec, err := h.Ledger.Add(domain.BookingInput{
		HotelID:    hotel.ID,
		HotelName:  hotel.Name,
		HotelImage: image,
		City:       hotel.City,
		Price:      hotel.Price,
		GuestName:  req.GuestName,
		Email:      req.Email,
		Phone:      req.Phone,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Rooms:      req.Rooms,
		Adults:     req.Adults,
		Children:   req.Children,
	})
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Booking failed", "booking could not be stored")
		return
	}
	observability.ObserveBooking("add")
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	recs := h.Ledger.List()
	if recs == nil {
		recs = []domain.BookingRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	// absent ids are a no-op by ledger contract, so 204 either way
	if err := h.Ledger.Remove(chi.URLParam(r, "id")); err != nil {
		writeProblem(w, http.StatusInternalServerError, "Cancel failed", "booking could not be removed")
		return
	}
	observability.ObserveBooking("remove")
	w.WriteHeader(http.StatusNoContent)
}

// ---- chat ----

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

func (h *Handlers) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	hs, err := h.Q.ListHotels(r.Context())
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Unavailable", "hotel collection could not be fetched")
		return
	}
	user, err := h.Sessions.CurrentUser()
	if err != nil {
		log.Warn().Err(err).Msg("session lookup failed; answering as signed out")
	}
	writeJSON(w, http.StatusOK, chatResponse{Answer: h.Bot.Answer(req.Question, hs, h.Ledger.List(), user)})
}

// ---- auth & theme ----

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Validation failed", err.Error())
		return
	}
	u, err := h.Sessions.Register(req.Name, req.Email, req.Password)
	if errors.Is(err, domain.ErrEmailTaken) {
		writeProblem(w, http.StatusConflict, "Conflict", "email already registered")
		return
	}
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Registration failed", "account could not be stored")
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{Name: u.Name, Email: u.Email})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Validation failed", err.Error())
		return
	}
	u, err := h.Sessions.Login(req.Email, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid email or password")
		return
	}
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Login failed", "session could not be stored")
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Name: u.Name, Email: u.Email})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(); err != nil {
		writeProblem(w, http.StatusInternalServerError, "Logout failed", "session could not be cleared")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.Sessions.CurrentUser()
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Session lookup failed", "session could not be read")
		return
	}
	if u == nil {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "not signed in")
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Name: u.Name, Email: u.Email})
}

type themeBody struct {
	Theme string `json:"theme"`
}

func (h *Handlers) getTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themeBody{Theme: h.Sessions.Theme()})
}

func (h *Handlers) setTheme(w http.ResponseWriter, r *http.Request) {
	var req themeBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if err := h.Sessions.SetTheme(req.Theme); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid theme", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: req.Theme})
}
