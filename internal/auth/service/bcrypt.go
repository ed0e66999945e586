package service

import "golang.org/x/crypto/bcrypt"

// BcryptVerifier implements domain.PasswordVerifier with bcrypt.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
