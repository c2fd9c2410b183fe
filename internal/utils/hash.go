package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a secret before it is stored. Both account
// passwords and one-time passcodes go through here, so plaintext codes never
// reach the database.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword reports whether the candidate matches the stored bcrypt hash.
// Used for login credentials and for submitted OTP codes.
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

