package model

import "time"

// Roles a user account can hold. Admin unlocks user management; everything
// else is available to both roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an application account as stored in the `users`
// collection. The bcrypt digest is stored under the legacy field name
// `password` and never serialized to JSON.
//
// Fields:
//
//	ID           – generated UUID, immutable.
//	Username     – unique login name.
//	Name         – display name, stamped onto append-log entries.
//	Role         – "admin" or "user".
//	PasswordHash – bcrypt digest of the password.
//	CreatedAt    – set once at creation.
type User struct {
	ID           string    `json:"id" bson:"id"`
	Username     string    `json:"username" bson:"username"`
	Name         string    `json:"name" bson:"name"`
	Role         string    `json:"role" bson:"role"`
	PasswordHash string    `json:"-" bson:"password"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
