package entities

// UserStatus is the lifecycle status of a user account.
type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is an account identified by email. Accounts are created in pending
// status and activated out of band; only active users can log in.
type User struct {
	ID        string
	Email     string
	Password  string // bcrypt hash, never the plaintext
	FirstName string
	LastName  string
	Status    UserStatus
	CreatedAt string
	UpdatedAt string
}
