package auth

import "golang.org/x/crypto/bcrypt"

// hashCost matches the cost factor the service has always used; changing it
// only affects newly created hashes.
const hashCost = 10

// HashPassword derives a salted bcrypt hash from the plaintext password.
// The plaintext is never stored.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	return string(bytes), err
}

// CheckPassword reports whether password matches the stored hash. bcrypt
// performs the comparison in constant time.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
