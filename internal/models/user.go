package models

// User is one row of the users table. The password is stored verbatim;
// the service compares it by plain equality on login.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // never expose in responses
}
