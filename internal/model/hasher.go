package model

// PasswordHasher hashes plaintext passwords and verifies them
// against stored digests.
type PasswordHasher interface {
	// Hash produces a salted one-way digest of the password.
	Hash(password string) (string, error)

	// Verify reports whether password matches digest. Malformed
	// digests verify as false, never as an error.
	Verify(password, digest string) bool
}
