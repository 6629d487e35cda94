package model

// PasswordHasher hashes and verifies user passwords. Check reports a
// mismatch as false, never as an error.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}
