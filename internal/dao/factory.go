// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of b9s

package dao

import (
	"github.com/b9s/b9s/internal/api"
)

// APIFactory implements the Factory interface using an APIClient.
type APIFactory struct {
	client api.Connection
	env    string
}

// NewFactory creates a new APIFactory with the given client.
func NewFactory(client api.Connection) *APIFactory {
	env := ""
	if client != nil {
		env = client.ActiveEnv()
	}
	return &APIFactory{
		client: client,
		env:    env,
	}
}

// Client returns the backend connection.
func (f *APIFactory) Client() api.Connection {
	return f.client
}

// Env returns the current environment name.
func (f *APIFactory) Env() string {
	if f.client != nil {
		return f.client.ActiveEnv()
	}
	return f.env
}

// SetEnv switches to a different environment.
func (f *APIFactory) SetEnv(env string) error {
	if f.client == nil {
		return api.ErrNoConnection
	}
	err := f.client.SwitchEnv(env)
	if err == nil {
		f.env = env
	}
	return err
}
