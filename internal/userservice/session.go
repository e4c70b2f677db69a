package userservice

import "context"

// Session is the explicit session object handed to presentation code: a
// narrow capability interface over the user service plus the in-memory
// reflection of the current account. It is dependency-injected, not a
// global; everything that needs to know who is logged in receives one.
type Session struct {
	svc     *UserService
	current *Account
}

// NewSession rehydrates the session from whatever pointer was last persisted,
// so a restarted process picks up where it left off.
func NewSession(ctx context.Context, svc *UserService) (*Session, error) {
	current, err := svc.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}

	return &Session{svc: svc, current: current}, nil
}

// Current returns the logged-in account without its credential, or nil.
func (s *Session) Current() *Account {
	return s.current
}

func (s *Session) IsAuthenticated() bool {
	return s.current != nil
}

func (s *Session) IsAdmin() bool {
	return s.current != nil && s.current.IsAdmin()
}

func (s *Session) Login(ctx context.Context, email, password string) (*Account, error) {
	account, err := s.svc.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.current = account
	return account, nil
}

func (s *Session) Register(ctx context.Context, email, password, name string) (*Account, error) {
	account, err := s.svc.Register(ctx, email, password, name)
	if err != nil {
		return nil, err
	}

	s.current = account
	return account, nil
}

func (s *Session) Logout(ctx context.Context) error {
	if err := s.svc.Logout(ctx); err != nil {
		return err
	}

	s.current = nil
	return nil
}
