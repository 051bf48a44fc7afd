package app

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"hotelbook/internal/domain"
)

const (
	usersKey       = "users"
	currentUserKey = "current_user"
	themeKey       = "theme"
)

// SessionService manages the client-local account records, the current
// session, and the theme preference as whole-value JSON blobs in the same
// store the booking ledger uses. Passwords are bcrypt-hashed at rest.
type SessionService struct {
	mu    sync.Mutex
	store domain.BlobStore
}

func NewSessionService(store domain.BlobStore) *SessionService {
	return &SessionService{store: store}
}

func (s *SessionService) Register(name, email, password string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	var users []domain.User
	if _, err := s.store.Get(usersKey, &users); err != nil {
		return domain.User{}, fmt.Errorf("load users: %w", err)
	}
	for _, u := range users {
		if u.Email == email {
			return domain.User{}, domain.ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	u := domain.User{Name: name, Email: email, PasswordHash: string(hash)}
	users = append(users, u)
	if err := s.store.Set(usersKey, users); err != nil {
		return domain.User{}, fmt.Errorf("persist users: %w", err)
	}
	if err := s.store.Set(currentUserKey, u); err != nil {
		return domain.User{}, fmt.Errorf("persist session: %w", err)
	}
	return u, nil
}

func (s *SessionService) Login(email, password string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	var users []domain.User
	if _, err := s.store.Get(usersKey, &users); err != nil {
		return domain.User{}, fmt.Errorf("load users: %w", err)
	}
	for _, u := range users {
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			break
		}
		if err := s.store.Set(currentUserKey, u); err != nil {
			return domain.User{}, fmt.Errorf("persist session: %w", err)
		}
		return u, nil
	}
	return domain.User{}, domain.ErrInvalidCredentials
}

func (s *SessionService) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Del(currentUserKey)
}

// CurrentUser returns nil when no session exists.
func (s *SessionService) CurrentUser() (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var u domain.User
	ok, err := s.store.Get(currentUserKey, &u)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *SessionService) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var t string
	if ok, _ := s.store.Get(themeKey, &t); ok && (t == domain.ThemeDark || t == domain.ThemeLight) {
		return t
	}
	return domain.ThemeLight
}

func (s *SessionService) SetTheme(t string) error {
	if t != domain.ThemeDark && t != domain.ThemeLight {
		return fmt.Errorf("unknown theme %q", t)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Set(themeKey, t)
}
