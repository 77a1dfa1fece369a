// Package service defines interfaces for core, stateless domain logic and
// for the external collaborators the application depends on. Keeping these
// as narrow interfaces lets the use cases be tested with fakes.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	Check(password, hash string) bool
}
