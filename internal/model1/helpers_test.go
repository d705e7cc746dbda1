package model1_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/b9s/b9s/internal/model1"
)

func TestLess(t *testing.T) {
	uu := map[string]struct {
		isNumber, isDuration bool
		v1, v2               string
		want                 bool
	}{
		"natural":        {v1: "SO-002", v2: "SO-010", want: true},
		"natural-rev":    {v1: "SO-010", v2: "SO-002"},
		"number":         {isNumber: true, v1: "1,000", v2: "2,000", want: true},
		"duration":       {isDuration: true, v1: "5m", v2: "2h", want: true},
		"duration-days":  {isDuration: true, v1: "3d", v2: "36h"},
		"equal-falls-id": {v1: "paid", v2: "paid", want: true},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			got := model1.Less(u.isNumber, u.isDuration, false, "a", "b", u.v1, u.v2)
			assert.Equal(t, u.want, got)
		})
	}
}

func TestIsValid(t *testing.T) {
	h := model1.Header{{Name: "NAME"}, {Name: "VALID"}}

	uu := map[string]struct {
		row  model1.Row
		want bool
	}{
		"blank":   {row: model1.Row{ID: "a", Fields: model1.Fields{"x", ""}}, want: true},
		"true":    {row: model1.Row{ID: "b", Fields: model1.Fields{"x", "true"}}, want: true},
		"false":   {row: model1.Row{ID: "c", Fields: model1.Fields{"x", "false"}}},
		"no-col":  {row: model1.Row{ID: "d", Fields: model1.Fields{"x"}}, want: true},
		"no-rows": {row: model1.Row{ID: "e"}, want: true},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.want, model1.IsValid("test", h, u.row))
		})
	}
}
