package domain

// User is an account known to the checkout service. PasswordHash is the
// bcrypt hash stored in the password column and must never be serialized.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
}

// PublicUser is the subset of User safe to return in responses.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public strips the password hash.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}
