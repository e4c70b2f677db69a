package userservice

import (
	"time"

	"github.com/tomaskoller/inkwell/internal/common"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

const (
	// usersKey holds the full account collection, passwords included.
	usersKey = "users"
	// sessionKey holds the current account pointer, password stripped.
	sessionKey = "currentUser"
)

type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	// Password is the stored credential. With the default PlainComparer it is
	// the plaintext password, a known defect; inject a hashing comparer to fix it.
	Password  string    `json:"password,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// stripped returns a copy safe to hand to presentation or persist as the
// session pointer: same account, no credential.
func (a Account) stripped() Account {
	a.Password = ""
	return a
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type accountModel struct {
	sub common.Substrate
	c   *common.Cache
}

// UserService owns the account collection and the persisted session pointer.
// It performs no role checks: admin gating is the caller's responsibility.
type UserService struct {
	m        *accountModel
	comparer CredentialComparer
}
