package userservice

import (
	"context"
	"time"
)

// demo credentials, also advertised in the seeded welcome post
const (
	DemoAdminEmail    = "admin@blog.com"
	DemoAdminPassword = "admin123"
	DemoUserEmail     = "user@blog.com"
	DemoUserPassword  = "user123"
)

// EnsureSeeded writes the two demo accounts if the substrate holds no account
// collection yet: one admin, one regular user, with fixed credentials so the
// system is usable without out-of-band provisioning. Idempotent; an existing
// collection is left alone. Called once at startup by the composition root.
//
// The fixed ids "1" and "2" are what the demo posts' authorId fields point at.
func (s *UserService) EnsureSeeded(ctx context.Context) error {
	found, err := s.m.exists(ctx)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	now := time.Now().UTC()

	demo := []struct {
		id       string
		email    string
		password string
		name     string
		role     Role
	}{
		{id: "1", email: DemoAdminEmail, password: DemoAdminPassword, name: "Admin User", role: RoleAdmin},
		{id: "2", email: DemoUserEmail, password: DemoUserPassword, name: "John Doe", role: RoleUser},
	}

	accounts := make([]Account, len(demo))
	for i, d := range demo {
		stored, err := s.comparer.Hash(d.password)
		if err != nil {
			return err
		}

		accounts[i] = Account{
			ID:        d.id,
			Email:     d.email,
			Name:      d.name,
			Password:  stored,
			Role:      d.role,
			CreatedAt: now,
		}
	}

	return s.m.save(ctx, accounts)
}
