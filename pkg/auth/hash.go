package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

type HashServiceInterface interface {
	HashPassword(password string) (string, error)
	ComparePassword(hashedPassword, password string) bool
}

// MinPasswordLength matches the register request validation; the hash layer
// enforces it as well so no caller can slip a weaker secret through.
const MinPasswordLength = 8

type HashService struct{}

func (b *HashService) HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", errors.New("password is too short")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (b *HashService) ComparePassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
