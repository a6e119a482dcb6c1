package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`
id: vacuum_casting
name: Vacuum Casting
category: Casting
rules:
  - MIN_DRAFT_ANGLE
materials:
  PU:
    name: Polyurethane
    parameters:
      min_draft_angle: 0.5
`)
	p, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "vacuum_casting", p.ID)
	assert.Equal(t, "Casting", p.Category)
	assert.Equal(t, []string{"MIN_DRAFT_ANGLE"}, p.Rules)

	m, ok := p.Material("PU")
	require.True(t, ok)
	assert.Equal(t, "Polyurethane", m.Name)
	assert.Equal(t, 0.5, m.Parameters["min_draft_angle"])

	_, ok = p.Material("Steel")
	assert.False(t, ok)
}

func TestParseRejectsIncomplete(t *testing.T) {
	_, err := Parse([]byte("name: Nameless\nrules: [A]"))
	assert.Error(t, err, "missing id")

	_, err = Parse([]byte("id: empty_rules"))
	assert.Error(t, err, "missing rules")

	_, err = Parse([]byte("id: [not a string"))
	assert.Error(t, err, "malformed yaml")
}

func TestLoadDir(t *testing.T) {
	procs, err := LoadDir("testdata")
	require.NoError(t, err)
	require.Len(t, procs, 1)

	p := procs[0]
	assert.Equal(t, "injection_molding", p.ID)
	assert.Len(t, p.Rules, 4)

	abs, ok := p.Material("ABS")
	require.True(t, ok)
	assert.Equal(t, 1.0, abs.Parameters["min_draft_angle"])
	assert.Equal(t, 1.2, abs.Parameters["min_wall_thickness"])
	assert.Equal(t, 3.5, abs.Parameters["max_wall_thickness"])
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir("testdata/nonexistent")
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	a := &Process{ID: "a", Name: "Alpha", Category: "X", Rules: []string{"R"}}
	b := &Process{ID: "b", Name: "Beta", Category: "Y", Rules: []string{"R"}}
	c := &Process{ID: "c", Name: "Aardvark", Category: "Y", Rules: []string{"R"}}

	r := NewRegistry(a, b)
	r.Add(c)
	assert.Equal(t, 3, r.Len())

	got, ok := r.Get("b")
	require.True(t, ok)
	assert.Equal(t, "Beta", got.Name)
	_, ok = r.Get("zzz")
	assert.False(t, ok)

	assert.Equal(t, []string{"X", "Y"}, r.Categories())

	y := r.ForCategory("Y")
	require.Len(t, y, 2)
	assert.Equal(t, "Aardvark", y[0].Name)
	assert.Equal(t, "Beta", y[1].Name)
}

func TestRegistryAddReplaces(t *testing.T) {
	r := NewRegistry(&Process{ID: "p", Name: "Old", Rules: []string{"R"}})
	r.Add(&Process{ID: "p", Name: "New", Rules: []string{"R"}})
	assert.Equal(t, 1, r.Len())
	got, _ := r.Get("p")
	assert.Equal(t, "New", got.Name)
}
