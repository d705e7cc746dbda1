package config_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/b9s/b9s/internal/api"
	"github.com/b9s/b9s/internal/config"
	"github.com/b9s/b9s/internal/config/data"
)

type fakeSettings struct {
	current string
	envs    map[string]*api.Environment
	active  string
}

func (f *fakeSettings) CurrentEnvName() (string, error) {
	if f.current == "" {
		return "", fmt.Errorf("no environments configured")
	}
	return f.current, nil
}

func (f *fakeSettings) EnvNames() ([]string, error) {
	nn := make([]string, 0, len(f.envs))
	for n := range f.envs {
		nn = append(nn, n)
	}
	return nn, nil
}

func (f *fakeSettings) GetEnv(name string) (*api.Environment, error) {
	e, ok := f.envs[name]
	if !ok {
		return nil, fmt.Errorf("env %q not found", name)
	}
	return e, nil
}

func (f *fakeSettings) SetActiveEnv(name string) error {
	if _, ok := f.envs[name]; !ok {
		return fmt.Errorf("env %q not found", name)
	}
	f.active = name
	return nil
}

func newSettings(names ...string) *fakeSettings {
	s := &fakeSettings{envs: make(map[string]*api.Environment)}
	for i, n := range names {
		s.envs[n] = &api.Environment{Name: n, URL: "http://" + n + ".local"}
		if i == 0 {
			s.current = n
		}
	}
	return s
}

func TestB9sValidate(t *testing.T) {
	b := config.NewB9s()
	b.RefreshRate = 0
	b.APITimeout = ""
	b.DefaultView = ""
	b.PageSize = -1
	b.SearchDebounce = -100

	b.Validate()

	assert.Equal(t, float32(config.DefaultRefreshRate), b.RefreshRate)
	assert.Equal(t, config.DefaultAPITimeout.String(), b.APITimeout)
	assert.Equal(t, config.DefaultView, b.DefaultView)
	assert.Equal(t, config.DefaultPageSize, b.PageSize)
	assert.Zero(t, b.SearchDebounce, "falls back to the controller default")
}

func TestB9sOverride(t *testing.T) {
	rate, ro, write := float32(5.0), true, true
	env, pageSize := "staging", 50

	b := config.NewB9s()
	b.Override(&data.Flags{
		RefreshRate: &rate,
		ReadOnly:    &ro,
		Write:       &write,
		Env:         &env,
		PageSize:    &pageSize,
	})

	assert.Equal(t, float32(5.0), b.RefreshRate)
	assert.False(t, b.ReadOnly, "write flag wins over readOnly")
	assert.Equal(t, "staging", b.DefaultEnv)
	assert.Equal(t, 50, b.PageSize)
}

func TestConfigRefine(t *testing.T) {
	uu := map[string]struct {
		flagEnv    string
		defaultEnv string
		err        bool
		e          string
	}{
		"flag-wins": {
			flagEnv:    "staging",
			defaultEnv: "prod",
			e:          "staging",
		},
		"config-default": {
			defaultEnv: "staging",
			e:          "staging",
		},
		"settings-default": {
			e: "prod",
		},
		"unknown-env": {
			flagEnv: "nope",
			err:     true,
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			settings := newSettings("prod", "staging")
			cfg := config.NewConfig(settings)
			cfg.B9s.DefaultEnv = u.defaultEnv

			flags := data.NewFlags()
			*flags.Env = u.flagEnv

			err := cfg.Refine(flags, settings)
			if u.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, u.e, cfg.B9s.ActiveEnv())
			assert.Equal(t, u.e, settings.active)
		})
	}
}

func TestAliases(t *testing.T) {
	a := config.NewAliases()

	assert.Equal(t, "sales/order", a.Get("ord"))
	assert.Equal(t, "marketing/promocode", a.Get("pc"))
	assert.Equal(t, "env", a.Get("ctx"))
	assert.Equal(t, "sales/order", a.Get("sales/order"))

	a.Set("bestsellers", "catalog/product")
	assert.Equal(t, "catalog/product", a.Get("bestsellers"))

	a.Delete("bestsellers")
	assert.Equal(t, "bestsellers", a.Get("bestsellers"))
}

func TestEnvDirRoundTrip(t *testing.T) {
	dir := data.NewDirAt(t.TempDir())

	cfg, err := dir.Load("staging")
	assert.NoError(t, err)
	assert.Equal(t, "staging", cfg.Context.EnvName)

	cfg.Context.SetReadOnly(true)
	cfg.Context.SetView(&data.View{Active: "catalog/product"})
	assert.NoError(t, dir.Save(cfg))

	reloaded, err := dir.Load("staging")
	assert.NoError(t, err)
	assert.True(t, reloaded.Context.IsReadOnly())
	assert.Equal(t, "catalog/product", reloaded.Context.GetView().Active)

	envs, err := dir.ListEnvs()
	assert.NoError(t, err)
	assert.Len(t, envs, 1)
}
