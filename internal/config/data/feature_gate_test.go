package data_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/b9s/b9s/internal/config/data"
)

func TestFeatureGatesEnabled(t *testing.T) {
	gates := data.FeatureGates{Refunds: true}

	uu := map[string]struct {
		gate string
		want bool
	}{
		"on":      {gate: data.GateRefunds, want: true},
		"off":     {gate: data.GateExports},
		"unknown": {gate: "frobnicate", want: true},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.want, gates.Enabled(u.gate))
		})
	}
}

func TestFeatureGatesMerge(t *testing.T) {
	gates := data.NewFeatureGates()
	gates.Merge(data.FeatureGates{Notifications: true})

	assert.True(t, gates.Notifications)
	assert.False(t, gates.Refunds)
	assert.False(t, gates.Exports)
}

func TestEnvContextActiveView(t *testing.T) {
	ctx := data.NewEnvContext("staging")
	assert.Empty(t, ctx.ActiveView())

	ctx.SetView(&data.View{Active: "catalog/product"})
	assert.Equal(t, "catalog/product", ctx.ActiveView())
}
