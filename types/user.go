package types

// User represents a row in user_table.
type User struct {
	// UserID is the unique identifier of the user.
	UserID int `json:"user_id" db:"user_id"`

	// UserName is the login name. Uniqueness is assumed but not enforced
	// by this service.
	UserName string `json:"user_name" db:"user_name"`

	// Password is the stored credential, compared verbatim at login.
	// The legacy schema keeps it in plain text; this service preserves
	// that behavior and never exposes the field in API responses.
	Password string `json:"-" db:"password"`

	// Role indicates the user's role within the system (e.g., "admin",
	// "operator"). Carried through the session token, never evaluated.
	Role string `json:"role" db:"role"`
}
