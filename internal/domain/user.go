package domain

// User is the client-local account record. The password is stored as a bcrypt
// hash, never in the clear.
type User struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)
