// Package password hashes and verifies user passwords with bcrypt.
package password

import "golang.org/x/crypto/bcrypt"

// MaxBytes is the longest password bcrypt accepts, counted in bytes.
const MaxBytes = 72

// ErrTooLong is returned by Hash for passwords over MaxBytes.
var ErrTooLong = bcrypt.ErrPasswordTooLong

// Hash returns a salted bcrypt hash of plain at the given cost.
func Hash(plain string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare returns nil when plain matches hash.
func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
