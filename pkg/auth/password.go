package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var (
	// ErrInvalidCredentials deliberately does not say whether the email
	// exists.
	ErrInvalidCredentials = errors.New("email or password incorrect")

	// ErrSocialAccount marks accounts created through OAuth; they have no
	// password hash and must log in through their provider.
	ErrSocialAccount = errors.New("account uses social login")
)

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

func CheckPassword(hash *string, plain string) error {
	if hash == nil {
		return ErrSocialAccount
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*hash), []byte(plain)); err != nil {
		return ErrInvalidCredentials
	}

	return nil
}
