package api_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/b9s/b9s/internal/api"
	"github.com/stretchr/testify/assert"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "environments.ini")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestEnvManagerLoad(t *testing.T) {
	path := writeEnvFile(t, `
[staging]
url = https://staging.example.com
token = sek-123
default = true

[production]
url = https://admin.example.com
token = sek-456
`)

	m, err := api.NewEnvManager(path)
	assert.NoError(t, err)

	name, err := m.CurrentEnvName()
	assert.NoError(t, err)
	assert.Equal(t, "staging", name)

	names, err := m.EnvNames()
	assert.NoError(t, err)
	assert.Equal(t, []string{"production", "staging"}, names)

	env, err := m.GetEnv("production")
	assert.NoError(t, err)
	assert.Equal(t, "https://admin.example.com", env.URL)
	assert.Equal(t, "sek-456", env.Token)
	assert.False(t, env.Default)
}

func TestEnvManagerNoDefaultPicksFirst(t *testing.T) {
	path := writeEnvFile(t, `
[zeta]
url = https://zeta.example.com

[alpha]
url = https://alpha.example.com
`)

	m, err := api.NewEnvManager(path)
	assert.NoError(t, err)

	name, err := m.CurrentEnvName()
	assert.NoError(t, err)
	assert.Equal(t, "alpha", name)
}

func TestEnvManagerErrors(t *testing.T) {
	uu := map[string]struct {
		content string
	}{
		"empty": {
			content: "",
		},
		"missing-url": {
			content: "[staging]\ntoken = sek-123\n",
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			_, err := api.NewEnvManager(writeEnvFile(t, u.content))
			assert.Error(t, err)
		})
	}
}

func TestEnvManagerSetActiveEnv(t *testing.T) {
	path := writeEnvFile(t, `
[staging]
url = https://staging.example.com
default = true

[production]
url = https://admin.example.com
`)

	m, err := api.NewEnvManager(path)
	assert.NoError(t, err)

	assert.NoError(t, m.SetActiveEnv("production"))
	name, err := m.CurrentEnvName()
	assert.NoError(t, err)
	assert.Equal(t, "production", name)

	assert.Error(t, m.SetActiveEnv("fred"))
}

func TestEnvManagerOverrideURL(t *testing.T) {
	path := writeEnvFile(t, `
[staging]
url = https://staging.example.com
default = true
`)

	m, err := api.NewEnvManager(path)
	assert.NoError(t, err)

	assert.NoError(t, m.OverrideURL("http://localhost:8080"))
	env, err := m.GetEnv("staging")
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", env.URL)

	assert.Error(t, m.OverrideURL(""))
}
