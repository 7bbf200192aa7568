package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completeSteps проводит сессию через шаги 1..upTo с валидным выбором
func completeSteps(t *testing.T, c *PoolCatalog, upTo int) Session {
	t.Helper()
	s := c.Start()
	choices := map[int][][2]string{
		1: {{GroupPoolModel, "classic"}},
		2: {{GroupPoolSize, "large"}},
		3: {{GroupFeatures, "led-lighting"}},
		4: {{GroupAccess, "easy"}, {GroupSoil, "clay"}, {GroupSlope, "flat"}},
		5: {{GroupServices, "decking"}},
	}
	for step := 1; step <= upTo; step++ {
		for _, ch := range choices[step] {
			s = c.Select(s, ch[0], ch[1], true)
		}
		var err error
		s, err = c.Next(s)
		require.NoError(t, err, "step %d", step)
	}
	return s
}

func TestStart(t *testing.T) {
	c := NewDefaultPoolCatalog()
	s := c.Start()

	assert.Equal(t, 1, s.State.CurrentStep)
	assert.Equal(t, TotalSteps, s.State.TotalSteps)
	assert.Empty(t, s.Selections)
	assert.Nil(t, s.Result)
}

func TestNext_BlockedWithoutRequiredSelection(t *testing.T) {
	c := NewDefaultPoolCatalog()
	s := c.Start()

	next, err := c.Next(s)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Step)
	assert.Equal(t, GroupPoolModel, verr.Group)
	assert.Equal(t, "Please select a pool model option", verr.Error())
	assert.Equal(t, 1, next.State.CurrentStep)
}

func TestNext_SiteConditionsNeedAllThreeGroups(t *testing.T) {
	c := NewDefaultPoolCatalog()
	s := completeSteps(t, c, 3)
	require.Equal(t, 4, s.State.CurrentStep)

	s = c.Select(s, GroupAccess, "easy", true)
	s = c.Select(s, GroupSoil, "normal", true)

	s, err := c.Next(s)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, GroupSlope, verr.Group)
	assert.Equal(t, "Please select a site condition option", err.Error())
	assert.Equal(t, 4, s.State.CurrentStep)
}

func TestNext_CheckboxStepsNeedNothing(t *testing.T) {
	c := NewDefaultPoolCatalog()
	s := completeSteps(t, c, 2)
	require.Equal(t, 3, s.State.CurrentStep)

	s, err := c.Next(s)
	require.NoError(t, err)
	assert.Equal(t, 4, s.State.CurrentStep)
}

func TestNext_LastStepGoesToResults(t *testing.T) {
	c := NewDefaultPoolCatalog()
	s := completeSteps(t, c, TotalSteps)

	assert.Equal(t, StepResults, s.State.CurrentStep)
	assert.True(t, s.State.Finished())
	require.NotNil(t, s.Result)
	assert.Equal(t, Finalize(s.Snapshot), *s.Result)

	// результаты — терминальное состояние
	again, err := c.Next(s)
	require.NoError(t, err)
	assert.Equal(t, StepResults, again.State.CurrentStep)
	assert.Equal(t, StepResults, c.Previous(s).State.CurrentStep)

	changed := c.Select(s, GroupPoolModel, "lap", true)
	assert.Equal(t, s.Selections, changed.Selections)
}

func TestPrevious(t *testing.T) {
	c := NewDefaultPoolCatalog()

	first := c.Previous(c.Start())
	assert.Equal(t, 1, first.State.CurrentStep)

	s := completeSteps(t, c, 3)
	require.Equal(t, 4, s.State.CurrentStep)

	// назад можно и с незаполненным шагом
	back := c.Previous(s)
	assert.Equal(t, 3, back.State.CurrentStep)
	assert.Equal(t, s.Selections, back.Selections)
}

func TestStepStaysInRange(t *testing.T) {
	c := NewDefaultPoolCatalog()
	s := c.Start()
	cmds := []string{"next", "prev", "prev", "next", "next", "prev", "next", "next"}
	s = c.Select(s, GroupPoolModel, "freeform", true)
	s = c.Select(s, GroupPoolSize, "small", true)

	for _, cmd := range cmds {
		if cmd == "next" {
			s, _ = c.Next(s)
		} else {
			s = c.Previous(s)
		}
		assert.GreaterOrEqual(t, s.State.CurrentStep, 1)
		assert.LessOrEqual(t, s.State.CurrentStep, TotalSteps)
	}
}

func TestSelect_SingleAndMulti(t *testing.T) {
	c := NewDefaultPoolCatalog()
	s := c.Start()

	s = c.Select(s, GroupPoolModel, "classic", true)
	s = c.Select(s, GroupPoolModel, "lap", true)
	assert.Equal(t, []string{"lap"}, s.Selections[GroupPoolModel])
	assert.Equal(t, 38000.0, s.Snapshot.BasePrice)

	// снятие не выбранной опции ничего не меняет
	s = c.Select(s, GroupPoolModel, "classic", false)
	assert.Equal(t, []string{"lap"}, s.Selections[GroupPoolModel])

	s = c.Select(s, GroupFeatures, "spa", true)
	s = c.Select(s, GroupFeatures, "waterfall", true)
	s = c.Select(s, GroupFeatures, "spa", true)
	assert.Equal(t, []string{"spa", "waterfall"}, s.Selections[GroupFeatures])
	assert.Equal(t, 15500.0, s.Snapshot.Features)

	s = c.Select(s, GroupFeatures, "spa", false)
	assert.Equal(t, 3500.0, s.Snapshot.Features)

	s = c.Select(s, GroupFeatures, "waterfall", false)
	_, ok := s.Selections[GroupFeatures]
	assert.False(t, ok)
}

func TestSelect_UnknownIgnored(t *testing.T) {
	c := NewDefaultPoolCatalog()
	s := c.Start()

	assert.Equal(t, s, c.Select(s, "colour", "blue", true))
	assert.Equal(t, s, c.Select(s, GroupPoolModel, "olympic", true))
}

func TestSelect_DoesNotMutateInput(t *testing.T) {
	c := NewDefaultPoolCatalog()
	s := c.Select(c.Start(), GroupFeatures, "spa", true)

	_ = c.Select(s, GroupFeatures, "heater", true)

	assert.Equal(t, []string{"spa"}, s.Selections[GroupFeatures])
}

func TestResume_ClampsForeignSession(t *testing.T) {
	c := NewDefaultPoolCatalog()

	var s Session
	require.NoError(t, json.Unmarshal([]byte(`{
		"state": {"currentStep": 42, "totalSteps": 9},
		"selections": {"poolModel": ["plunge"]},
		"snapshot": {"basePrice": 1}
	}`), &s))

	s = c.Resume(s)
	// шаг 2 не пройден: размер не выбран
	assert.Equal(t, 2, s.State.CurrentStep)
	assert.Equal(t, TotalSteps, s.State.TotalSteps)
	assert.Equal(t, 22000.0, s.Snapshot.BasePrice)
	assert.Nil(t, s.Result)

	s.State.CurrentStep = -3
	assert.Equal(t, 1, c.Resume(s).State.CurrentStep)
}

func TestValidate_UnknownStepPasses(t *testing.T) {
	c := NewDefaultPoolCatalog()
	assert.NoError(t, c.Validate(StepResults, Selections{}))
	assert.Equal(t, "option", c.StepName(StepResults))
}

func TestResume_StepNeedsValidatedSteps(t *testing.T) {
	c := NewDefaultPoolCatalog()
	valid := completeSteps(t, c, TotalSteps).Selections

	noSize := valid.Clone()
	delete(noSize, GroupPoolSize)
	noSlope := valid.Clone()
	delete(noSlope, GroupSlope)

	tests := []struct {
		name       string
		step       int
		sel        Selections
		wantStep   int
		wantResult bool
	}{
		{name: "step 5 without selections", step: 5, sel: nil, wantStep: 1},
		{name: "results without selections", step: StepResults, sel: Selections{}, wantStep: 1},
		{name: "step 4 without size", step: 4, sel: noSize, wantStep: 2},
		{name: "results without slope", step: StepResults, sel: noSlope, wantStep: 4},
		{name: "step 5 with slope missing", step: 5, sel: noSlope, wantStep: 4},
		{name: "valid step 5", step: 5, sel: valid, wantStep: 5},
		{name: "valid results", step: StepResults, sel: valid, wantStep: StepResults, wantResult: true},
		{name: "step 1 always reachable", step: 1, sel: nil, wantStep: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := c.Resume(Session{State: WizardState{CurrentStep: tt.step}, Selections: tt.sel})
			assert.Equal(t, tt.wantStep, s.State.CurrentStep)
			assert.Equal(t, tt.wantResult, s.Result != nil)
		})
	}
}

func TestNext_ForgedSessionCannotSkipSteps(t *testing.T) {
	c := NewDefaultPoolCatalog()

	next, err := c.Next(Session{State: WizardState{CurrentStep: TotalSteps}})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Step)
	assert.Equal(t, 1, next.State.CurrentStep)
	assert.Nil(t, next.Result)
}

func TestResume_NormalizesSelections(t *testing.T) {
	c := NewDefaultPoolCatalog()

	s := c.Resume(Session{
		State: WizardState{CurrentStep: 1},
		Selections: Selections{
			GroupPoolModel: {"classic", "lap"},
			GroupFeatures:  {"spa", "spa", "olympic", "spa"},
			GroupServices:  {"nothing"},
			"colour":       {"blue"},
		},
	})

	assert.Equal(t, Selections{
		GroupPoolModel: {"lap"},
		GroupFeatures:  {"spa"},
	}, s.Selections)
	assert.Equal(t, 12000.0, s.Snapshot.Features)
	assert.Equal(t, 38000.0, s.Snapshot.BasePrice)
}
