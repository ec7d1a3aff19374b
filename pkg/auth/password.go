package auth

import (
	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordCost = 10
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72

	MsgPasswordTooLong = "Password must be at most 72 bytes"
)

// HashPassword returns a ValidationError for passwords bcrypt cannot hash
// and a StoreError for any other hashing failure.
func HashPassword(plain string) (string, error) {
	if len(plain) > MaxPasswordBytes {
		return "", apperror.Validation(MsgPasswordTooLong)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		logrus.Error(err)
		return "", apperror.Store(err)
	}
	return string(hash), nil
}

func VerifyPassword(plain string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
