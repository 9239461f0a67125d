package internal

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/bcrypt"
)

const signingSecretBytes = 32

// GenerateSigningSecret prints a random 256-bit hex secret for auth.secret.
func GenerateSigningSecret() error {
	secret, err := newSigningSecret()
	if err != nil {
		return err
	}
	fmt.Println("SKYUP_AUTH_SECRET=" + secret)
	return nil
}

func newSigningSecret() (string, error) {
	key := make([]byte, signingSecretBytes)
	if _, err := rand.Read(key); err != nil {
		return "", errors.Wrap(err, "reading random bytes")
	}
	return hex.EncodeToString(key), nil
}

// HashAdminPassword prints the bcrypt hash of ADMIN_PASSWORD so the plain
// password never has to live in config.
func HashAdminPassword() error {
	hash, err := hashPassword(os.Getenv("ADMIN_PASSWORD"))
	if err != nil {
		return err
	}
	fmt.Println("SKYUP_AUTH_ADMIN_PASSWORD_HASH=" + hash)
	return nil
}

func hashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("ADMIN_PASSWORD is empty, pass -password or set the variable")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hashing password")
	}
	return string(hash), nil
}
