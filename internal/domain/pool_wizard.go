package domain

import "fmt"

const (
	TotalSteps  = 5
	StepResults = TotalSteps + 1 // терминальный шаг «результаты»
)

// WizardState — позиция мастера
type WizardState struct {
	CurrentStep int `json:"currentStep"`
	TotalSteps  int `json:"totalSteps"`
}

func NewWizardState() WizardState {
	return WizardState{CurrentStep: 1, TotalSteps: TotalSteps}
}

// Finished — мастер дошёл до результатов
func (s WizardState) Finished() bool {
	return s.CurrentStep == StepResults
}

// Session — всё состояние мастера одним значением.
// Переходы принимают Session и возвращают новую, ничего не храня у себя.
type Session struct {
	State      WizardState     `json:"state"`
	Selections Selections      `json:"selections"`
	Snapshot   PricingSnapshot `json:"snapshot"`
	Result     *EstimateResult `json:"result,omitempty"`
}

// ValidationError — на шаге не выбрана обязательная опция
type ValidationError struct {
	Step     int    `json:"step"`
	Group    string `json:"group"`
	Category string `json:"category"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Please select a %s option", e.Category)
}

// Start — новая сессия на первом шаге
func (c *PoolCatalog) Start() Session {
	sel := Selections{}
	return Session{
		State:      NewWizardState(),
		Selections: sel,
		Snapshot:   c.ComputeSnapshot(sel),
	}
}

// Resume приводит пришедшую извне сессию в порядок: выбор нормализован,
// шаг в допустимых границах и не дальше первого непройденного шага,
// снапшот и результат пересчитаны из выбора.
func (c *PoolCatalog) Resume(s Session) Session {
	s.State.TotalSteps = TotalSteps
	switch {
	case s.State.CurrentStep == StepResults:
	case s.State.CurrentStep < 1:
		s.State.CurrentStep = 1
	case s.State.CurrentStep > TotalSteps:
		s.State.CurrentStep = TotalSteps
	}
	s.Selections = c.Normalize(s.Selections)

	// на шаг N можно попасть только через проверенные шаги 1..N-1
	last := s.State.CurrentStep - 1
	if s.State.Finished() {
		last = TotalSteps
	}
	for step := 1; step <= last; step++ {
		if c.Validate(step, s.Selections) != nil {
			s.State.CurrentStep = step
			break
		}
	}

	s.Snapshot = c.ComputeSnapshot(s.Selections)
	s.Result = nil
	if s.State.Finished() {
		res := Finalize(s.Snapshot)
		s.Result = &res
	}
	return s
}

// Validate проверяет шаг: в каждой обязательной single-группе шага
// должна быть выбрана ровно одна существующая опция.
func (c *PoolCatalog) Validate(step int, sel Selections) error {
	for _, g := range c.GroupsForStep(step) {
		if !g.Required || g.Kind != GroupKindSingle {
			continue
		}
		ids := sel[g.ID]
		if len(ids) != 1 || g.Option(ids[0]) == nil {
			return &ValidationError{Step: step, Group: g.ID, Category: c.StepName(step)}
		}
	}
	return nil
}

// Select — изменение выбора (радио/чекбокс). Неизвестные группы и опции
// игнорируются, после результатов выбор не меняется.
func (c *PoolCatalog) Select(s Session, group, option string, checked bool) Session {
	if s.State.Finished() {
		return s
	}
	g := c.Group(group)
	if g == nil || g.Option(option) == nil {
		return s
	}

	sel := s.Selections.Clone()
	switch g.Kind {
	case GroupKindSingle:
		if checked {
			sel[group] = []string{option}
		} else if sel.Has(group, option) {
			delete(sel, group)
		}
	default:
		if checked {
			if !sel.Has(group, option) {
				sel[group] = append(sel[group], option)
			}
		} else {
			kept := sel[group][:0]
			for _, id := range sel[group] {
				if id != option {
					kept = append(kept, id)
				}
			}
			if len(kept) == 0 {
				delete(sel, group)
			} else {
				sel[group] = kept
			}
		}
	}

	s.Selections = sel
	s.Snapshot = c.ComputeSnapshot(sel)
	return s
}

// Next — шаг вперёд. Если шаг не прошёл проверку, сессия не меняется
// и возвращается *ValidationError. С последнего шага переходит к результатам.
func (c *PoolCatalog) Next(s Session) (Session, error) {
	s = c.Resume(s)
	if s.State.Finished() {
		return s, nil
	}
	if err := c.Validate(s.State.CurrentStep, s.Selections); err != nil {
		return s, err
	}

	if s.State.CurrentStep < TotalSteps {
		s.State.CurrentStep++
		return s, nil
	}

	res := Finalize(s.Snapshot)
	s.State.CurrentStep = StepResults
	s.Result = &res
	return s, nil
}

// Previous — шаг назад, без проверки. С первого шага и с результатов не ходит.
func (c *PoolCatalog) Previous(s Session) Session {
	s = c.Resume(s)
	if s.State.CurrentStep > 1 && s.State.CurrentStep <= TotalSteps {
		s.State.CurrentStep--
	}
	return s
}
