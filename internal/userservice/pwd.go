package userservice

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// CredentialComparer abstracts how credentials are stored at rest and checked
// at login, so a deployment can swap the strategy without touching call
// sites. Compare reports (false, nil) for a plain mismatch; errors are
// reserved for the comparer itself failing.
type CredentialComparer interface {
	Hash(plain string) (string, error)
	Compare(stored, candidate string) (bool, error)
}

// PlainComparer stores and compares credentials in plaintext: the users
// collection at rest contains readable passwords. A known defect; inject
// BcryptComparer to fix it.
type PlainComparer struct{}

func (PlainComparer) Hash(plain string) (string, error) {
	return plain, nil
}

func (PlainComparer) Compare(stored, candidate string) (bool, error) {
	return stored == candidate, nil
}

// BcryptComparer is the drop-in hardening: bcrypt hashes at rest, constant
// time comparison. Note that switching comparers invalidates credentials
// already stored under the other scheme.
type BcryptComparer struct {
	Cost int
}

func (c BcryptComparer) Hash(plain string) (string, error) {
	cost := c.Cost
	if cost == 0 {
		cost = 12
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

func (c BcryptComparer) Compare(stored, candidate string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}
