package userservice

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/tomaskoller/inkwell/internal/common"
)

func newAccountModel(sub common.Substrate, c *common.Cache) *accountModel {
	return &accountModel{sub: sub, c: c}
}

func (m *accountModel) load(ctx context.Context) ([]Account, error) {
	if v, ok := m.c.Get(common.CacheKeyCollection(usersKey)); ok {
		if accounts, ok := v.([]Account); ok {
			return slices.Clone(accounts), nil
		}
	}

	raw, found, err := m.sub.Get(ctx, usersKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var accounts []Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, &common.SubstrateError{Op: "decode", Key: usersKey, Err: err}
	}

	m.c.Set(common.CacheKeyCollection(usersKey), slices.Clone(accounts))

	return accounts, nil
}

func (m *accountModel) save(ctx context.Context, accounts []Account) error {
	if accounts == nil {
		accounts = []Account{}
	}

	raw, err := json.Marshal(accounts)
	if err != nil {
		return &common.SubstrateError{Op: "encode", Key: usersKey, Err: err}
	}

	if err := m.sub.Set(ctx, usersKey, string(raw)); err != nil {
		return err
	}

	m.c.Set(common.CacheKeyCollection(usersKey), slices.Clone(accounts))

	return nil
}

func (m *accountModel) exists(ctx context.Context) (bool, error) {
	_, found, err := m.sub.Get(ctx, usersKey)
	return found, err
}

// getSession reads the persisted current-account pointer. Absent is nil, not
// an error.
func (m *accountModel) getSession(ctx context.Context) (*Account, error) {
	raw, found, err := m.sub.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var account Account
	if err := json.Unmarshal([]byte(raw), &account); err != nil {
		return nil, &common.SubstrateError{Op: "decode", Key: sessionKey, Err: err}
	}

	return &account, nil
}

// setSession persists the account as the current session, stripped of its
// credential.
func (m *accountModel) setSession(ctx context.Context, account Account) error {
	raw, err := json.Marshal(account.stripped())
	if err != nil {
		return &common.SubstrateError{Op: "encode", Key: sessionKey, Err: err}
	}

	return m.sub.Set(ctx, sessionKey, string(raw))
}

func (m *accountModel) clearSession(ctx context.Context) error {
	return m.sub.Remove(ctx, sessionKey)
}
