// Package repository defines error values that are reused across multiple
// repositories. These sentinels allow handlers to distinguish failure
// scenarios without inspecting driver errors: ErrNotFound becomes a 404,
// ErrUsernameTaken a 400 on user creation.
package repository

import "errors"

// ErrNotFound is returned when a document with the requested id does not
// exist in its collection.
var ErrNotFound = errors.New("not found")

// ErrUsernameTaken is returned when creating a user whose username already
// exists. Usernames are the only uniqueness constraint in the system.
var ErrUsernameTaken = errors.New("username already exists")
