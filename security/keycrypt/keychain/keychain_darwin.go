// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

//go:build darwin && cgo
// +build darwin,cgo

package keychain

import (
	"github.com/grailbio/genpassword/errors"
	"github.com/grailbio/genpassword/security/keycrypt"
	keychain "github.com/keybase/go-keychain"
)

func init() {
	keycrypt.RegisterFunc("keychain", func(h string) keycrypt.Keycrypt {
		return &Keychain{Namespace: h}
	})
}

var _ keycrypt.Keycrypt = (*Keychain)(nil)

// Keychain stores secrets as generic passwords in the user's default
// keychain.
type Keychain struct {
	Namespace string
}

// Lookup implements keycrypt.Keycrypt.
func (k *Keychain) Lookup(name string) keycrypt.Secret {
	return &secret{k, name}
}

type secret struct {
	kc   *Keychain
	name string
}

func (s *secret) Get() ([]byte, error) {
	service, account, err := item(s.kc.Namespace, s.name)
	if err != nil {
		return nil, err
	}
	data, err := keychain.GetGenericPassword(service, account, "", "")
	if err == keychain.ErrorItemNotFound || (err == nil && data == nil) {
		return nil, keycrypt.ErrNoSuchSecret
	} else if err != nil {
		return nil, errors.E(kind(err), "keychain", err)
	}
	return data, nil
}

func (s *secret) Put(p []byte) error {
	service, account, err := item(s.kc.Namespace, s.name)
	if err != nil {
		return err
	}
	// Adding an item that exists fails; replace it instead.
	_ = keychain.DeleteGenericPasswordItem(service, account)

	password := keychain.NewGenericPassword(service, account, "", p, "")
	password.SetSynchronizable(keychain.SynchronizableNo)
	password.SetAccessible(keychain.AccessibleWhenUnlocked)
	if err := keychain.AddItem(password); err != nil {
		return errors.E(kind(err), "keychain", err)
	}
	return nil
}

func kind(err error) errors.Kind {
	switch err {
	case keychain.ErrorInteractionNotAllowed, keychain.ErrorAuthFailed:
		return errors.NotAllowed
	case keychain.ErrorNotAvailable:
		return errors.Unavailable
	}
	return errors.Other
}
