package handlers

import (
	"errors"
	"net/http"

	"pool-calc-backend/internal/domain"
	"pool-calc-backend/internal/report"
)

// Типы команд мастера
const (
	CommandStart    = "start"
	CommandSelect   = "select"
	CommandNext     = "next"
	CommandPrevious = "previous"
)

// WizardCommand — одно действие пользователя
type WizardCommand struct {
	Type    string `json:"type"`
	Group   string `json:"group,omitempty"`
	Option  string `json:"option,omitempty"`
	Checked bool   `json:"checked,omitempty"`
}

// WizardRequest — сессию хранит клиент и присылает её с каждой командой
type WizardRequest struct {
	Session *domain.Session `json:"session,omitempty"`
	Command WizardCommand   `json:"command"`
}

// WizardResponse — новая сессия; error заполнен, если шаг не прошёл проверку
type WizardResponse struct {
	Session      domain.Session          `json:"session"`
	Error        string                  `json:"error,omitempty"`
	Validation   *domain.ValidationError `json:"validation,omitempty"`
	StepName     string                  `json:"stepName"`
	Items        []domain.BreakdownItem  `json:"items,omitempty"`
	LowEstimate  string                  `json:"lowEstimate,omitempty"`
	HighEstimate string                  `json:"highEstimate,omitempty"`
}

// POST /api/pool/wizard
func (e *Env) HandleWizard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req WizardRequest
	if !e.decodeJSON(w, r, &req) {
		return
	}

	c := e.Catalog()

	var s domain.Session
	if req.Session == nil || req.Command.Type == CommandStart {
		s = c.Start()
	} else {
		s = c.Resume(*req.Session)
	}

	var resp WizardResponse
	switch req.Command.Type {
	case CommandStart:
	case CommandSelect:
		s = c.Select(s, req.Command.Group, req.Command.Option, req.Command.Checked)
	case CommandNext:
		wasFinished := s.State.Finished()
		next, err := c.Next(s)
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			e.Metrics.ObserveValidationFailure(verr.Step)
			resp.Error = verr.Error()
			resp.Validation = verr
		}
		s = next
		if !wasFinished && s.State.Finished() {
			e.recordEstimate(r, report.NewEstimate(c, s.Selections))
		}
	case CommandPrevious:
		s = c.Previous(s)
	default:
		http.Error(w, "unknown command type: "+req.Command.Type, http.StatusBadRequest)
		return
	}

	resp.Session = s
	resp.StepName = c.StepName(s.State.CurrentStep)
	if s.Result != nil {
		resp.Items = s.Result.Items()
		resp.LowEstimate = domain.FormatMoney(s.Result.LowEstimate)
		resp.HighEstimate = domain.FormatMoney(s.Result.HighEstimate)
	}
	e.writeJSON(w, r, resp)
}
