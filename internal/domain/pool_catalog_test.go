package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c := NewDefaultPoolCatalog()
	require.NoError(t, c.Check())

	for _, id := range []string{GroupPoolModel, GroupPoolSize, GroupFeatures, GroupAccess, GroupSoil, GroupSlope, GroupServices} {
		assert.NotNil(t, c.Group(id), id)
	}
	assert.Len(t, c.GroupsForStep(4), 3)
	assert.Equal(t, "pool size", c.StepName(2))
}

func TestCatalogCheck_Rejects(t *testing.T) {
	dup := NewDefaultPoolCatalog()
	dup.Groups = append(dup.Groups, dup.Groups[0])
	assert.Error(t, dup.Check())

	badKind := NewDefaultPoolCatalog()
	badKind.Groups[0].Kind = "dropdown"
	assert.Error(t, badKind.Check())

	badStep := NewDefaultPoolCatalog()
	badStep.Groups[1].Step = 7
	assert.Error(t, badStep.Check())

	empty := NewDefaultPoolCatalog()
	empty.Groups[2].Options = nil
	assert.Error(t, empty.Check())

	negative := NewDefaultPoolCatalog()
	negative.Groups[0].Options[0].Price = "-100000"
	assert.Error(t, negative.Check())

	// нечитаемая цена допустима, при расчёте она считается нулём
	garbage := NewDefaultPoolCatalog()
	garbage.Groups[0].Options[0].Price = "ask us"
	assert.NoError(t, garbage.Check())
}

func TestCatalogJSON_AcceptsNumbersAndStrings(t *testing.T) {
	var c PoolCatalog
	err := json.Unmarshal([]byte(`{
		"steps": [{"number": 1, "name": "pool model"}],
		"groups": [{
			"id": "poolModel", "label": "Model", "kind": "single", "step": 1, "required": true,
			"options": [
				{"id": "a", "label": "A", "price": 30000},
				{"id": "b", "label": "B", "price": "31000"},
				{"id": "c", "label": "C", "price": null}
			]
		}]
	}`), &c)
	require.NoError(t, err)

	g := c.Group(GroupPoolModel)
	require.NotNil(t, g)
	assert.Equal(t, Amount("30000"), g.Option("a").Price)
	assert.Equal(t, Amount("31000"), g.Option("b").Price)
	assert.Equal(t, Amount(""), g.Option("c").Price)

	out, err := json.Marshal(g.Options[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","label":"A","price":30000}`, string(out))
}

func TestCatalogYAML_RoundTrip(t *testing.T) {
	def := NewDefaultPoolCatalog()

	raw, err := yaml.Marshal(def)
	require.NoError(t, err)

	var back PoolCatalog
	require.NoError(t, yaml.Unmarshal(raw, &back))
	assert.Equal(t, *def, back)
}
