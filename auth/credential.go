package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed login; it never says which half was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credential is the single shared login of the shop.
type Credential struct {
	User         string
	PasswordHash []byte
}

// NewCredential builds a Credential from a bcrypt hash, or hashes plain when
// no hash is given.
func NewCredential(user, hash, plain string) (Credential, error) {
	if user == "" {
		return Credential{}, errors.New("auth: empty user")
	}
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return Credential{}, err
		}
		return Credential{User: user, PasswordHash: []byte(hash)}, nil
	}
	if plain == "" {
		return Credential{}, errors.New("auth: no password configured")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return Credential{}, err
	}
	return Credential{User: user, PasswordHash: h}, nil
}

// Verify checks user and password. The password hash is always compared so
// timing does not reveal whether the user name matched.
func (c Credential) Verify(user, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(c.User)) == 1
	pwErr := bcrypt.CompareHashAndPassword(c.PasswordHash, []byte(password))
	if !userOK || pwErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}
