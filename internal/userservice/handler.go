package userservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tomaskoller/inkwell/internal/common"
)

var (
	ErrDuplicateEmail = errors.New("duplicate email")
	// ErrInvalidCredentials covers both an unknown email and a wrong password,
	// deliberately: a distinguishing signal would leak which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// NewUserService wires the account store. A nil comparer falls back to
// PlainComparer.
func NewUserService(sub common.Substrate, c *common.Cache, comparer CredentialComparer) *UserService {
	if comparer == nil {
		comparer = PlainComparer{}
	}

	return &UserService{
		m:        newAccountModel(sub, c),
		comparer: comparer,
	}
}

// Register creates an account with role user and establishes it as the
// current session. It fails with ErrDuplicateEmail if the email is already
// taken (exact, case-sensitive match).
func (s *UserService) Register(ctx context.Context, email, password, name string) (*Account, error) {
	accounts, err := s.m.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, a := range accounts {
		if a.Email == email {
			return nil, ErrDuplicateEmail
		}
	}

	stored, err := s.comparer.Hash(password)
	if err != nil {
		return nil, err
	}

	account := Account{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Password:  stored,
		Role:      RoleUser,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.m.save(ctx, append(accounts, account)); err != nil {
		return nil, err
	}

	if err := s.m.setSession(ctx, account); err != nil {
		return nil, err
	}

	result := account.stripped()
	return &result, nil
}

// Login authenticates by exact email match plus credential comparison and
// establishes the account as the current session. The returned account never
// carries the credential.
func (s *UserService) Login(ctx context.Context, email, password string) (*Account, error) {
	accounts, err := s.m.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, a := range accounts {
		if a.Email != email {
			continue
		}

		ok, err := s.comparer.Compare(a.Password, password)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		if err := s.m.setSession(ctx, a); err != nil {
			return nil, err
		}

		result := a.stripped()
		return &result, nil
	}

	return nil, ErrInvalidCredentials
}

// Logout clears the current session. Logging out with no active session is a
// no-op, not an error.
func (s *UserService) Logout(ctx context.Context) error {
	return s.m.clearSession(ctx)
}

// CurrentSession returns the persisted current account pointer, or nil if
// nobody is logged in. The session survives process restarts.
func (s *UserService) CurrentSession(ctx context.Context) (*Account, error) {
	return s.m.getSession(ctx)
}

// GetAccounts lists every account with credentials stripped, for the admin
// surface. The caller must gate this on IsAdmin.
func (s *UserService) GetAccounts(ctx context.Context) ([]Account, error) {
	accounts, err := s.m.load(ctx)
	if err != nil {
		return nil, err
	}

	stripped := make([]Account, len(accounts))
	for i, a := range accounts {
		stripped[i] = a.stripped()
	}

	return stripped, nil
}

type CreateAccountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// CreateAccount adds an account with an admin-chosen role. Unlike Register it
// never touches the current session. Fails with ErrDuplicateEmail on an
// exact email collision; caller-gated like every other admin mutation.
func (s *UserService) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*Account, error) {
	accounts, err := s.m.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, a := range accounts {
		if a.Email == req.Email {
			return nil, ErrDuplicateEmail
		}
	}

	stored, err := s.comparer.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = RoleUser
	}

	account := Account{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Name:      req.Name,
		Password:  stored,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.m.save(ctx, append(accounts, account)); err != nil {
		return nil, err
	}

	result := account.stripped()
	return &result, nil
}

// UpdateAccountRequest carries a partial account update. Nil fields are left
// untouched. The credential is not editable this way; it only changes through
// the comparer on registration or creation.
type UpdateAccountRequest struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
	Role  *Role   `json:"role"`
}

// UpdateAccount merges the given fields over the stored account. An unknown
// id returns (nil, nil) and performs no write. Moving to an email already
// held by another account fails with ErrDuplicateEmail, keeping the
// collection's uniqueness invariant. Renaming does not rewrite the
// authorName snapshots on existing posts, and the persisted session pointer
// is left as it was.
func (s *UserService) UpdateAccount(ctx context.Context, id string, req *UpdateAccountRequest) (*Account, error) {
	accounts, err := s.m.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range accounts {
		if accounts[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}

	if req.Email != nil {
		for i, a := range accounts {
			if i != idx && a.Email == *req.Email {
				return nil, ErrDuplicateEmail
			}
		}
		accounts[idx].Email = *req.Email
	}
	if req.Name != nil {
		accounts[idx].Name = *req.Name
	}
	if req.Role != nil {
		accounts[idx].Role = *req.Role
	}

	if err := s.m.save(ctx, accounts); err != nil {
		return nil, err
	}

	result := accounts[idx].stripped()
	return &result, nil
}

// DeleteAccount removes the account with the given id and reports whether
// anything was removed. The author's posts are not cascaded; their authorId
// simply dangles. A persisted session pointing at the deleted account is
// likewise left in place.
func (s *UserService) DeleteAccount(ctx context.Context, id string) (bool, error) {
	accounts, err := s.m.load(ctx)
	if err != nil {
		return false, err
	}

	remaining := make([]Account, 0, len(accounts))
	for _, a := range accounts {
		if a.ID != id {
			remaining = append(remaining, a)
		}
	}

	if len(remaining) == len(accounts) {
		return false, nil
	}

	if err := s.m.save(ctx, remaining); err != nil {
		return false, err
	}

	return true, nil
}
