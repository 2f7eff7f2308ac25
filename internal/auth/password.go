package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher hides the hashing scheme from the services so stored hashes
// can be produced and checked without ever keeping the clear password.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when the password matches the stored hash.
	Compare(hash, password string) error
}

type bcryptHasher struct{}

// NewBcryptHasher returns a PasswordHasher backed by bcrypt at default cost.
func NewBcryptHasher() PasswordHasher {
	return bcryptHasher{}
}

func (bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (bcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
