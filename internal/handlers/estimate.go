package handlers

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"pool-calc-backend/internal/domain"
	"pool-calc-backend/internal/report"
)

// EstimateRequest — готовый выбор, без прохода по шагам.
// Проверка обязательных групп та же, что и у мастера.
type EstimateRequest struct {
	Selections domain.Selections `json:"selections"`
}

// EstimateItem — строка разбивки с готовой к показу суммой
type EstimateItem struct {
	Label     string `json:"label"`
	Amount    int64  `json:"amount"`
	Formatted string `json:"formatted"`
}

type EstimateResponse struct {
	Reference        string                  `json:"reference"`
	CreatedAt        time.Time               `json:"createdAt"`
	LowEstimate      int64                   `json:"lowEstimate"`
	HighEstimate     int64                   `json:"highEstimate"`
	Range            string                  `json:"range"`
	Breakdown        domain.Breakdown        `json:"breakdown"`
	StandardServices domain.StandardServices `json:"standardServices"`
	Items            []EstimateItem          `json:"items"`
}

// estimateFromRequest читает выбор, проверяет все шаги и считает смету.
// При ошибке сам отвечает клиенту.
func (e *Env) estimateFromRequest(w http.ResponseWriter, r *http.Request) (report.Estimate, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return report.Estimate{}, false
	}

	var req EstimateRequest
	if !e.decodeJSON(w, r, &req) {
		return report.Estimate{}, false
	}
	c := e.Catalog()
	req.Selections = c.Normalize(req.Selections)
	for step := 1; step <= domain.TotalSteps; step++ {
		if err := c.Validate(step, req.Selections); err != nil {
			e.Metrics.ObserveValidationFailure(step)
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return report.Estimate{}, false
		}
	}

	est := report.NewEstimate(c, req.Selections)
	e.recordEstimate(r, est)
	return est, true
}

// recordEstimate — счётчик, метрики и уведомление о финальной смете
func (e *Env) recordEstimate(r *http.Request, est report.Estimate) {
	if err := e.incrementEstimateCount(r.Context()); err != nil {
		zap.S().Named("handlers").Errorw("failed to increment estimate count", "error", err)
	}
	e.Metrics.ObserveEstimate(est.Result.Breakdown.Total)
	e.NotifyTelegramPoolEstimate(est)

	zap.S().Named("handlers").Infow("estimate finalized",
		"reference", est.Reference,
		"total", est.Result.Breakdown.Total,
		"low", est.Result.LowEstimate,
		"high", est.Result.HighEstimate)
}

// POST /api/pool/estimate
func (e *Env) HandleEstimate(w http.ResponseWriter, r *http.Request) {
	est, ok := e.estimateFromRequest(w, r)
	if !ok {
		return
	}

	res := est.Result
	resp := EstimateResponse{
		Reference:        est.Reference,
		CreatedAt:        est.CreatedAt,
		LowEstimate:      res.LowEstimate,
		HighEstimate:     res.HighEstimate,
		Range:            domain.FormatMoney(res.LowEstimate) + " - " + domain.FormatMoney(res.HighEstimate),
		Breakdown:        res.Breakdown,
		StandardServices: res.StandardServices,
	}
	for _, it := range res.Items() {
		resp.Items = append(resp.Items, EstimateItem{
			Label:     it.Label,
			Amount:    it.Amount,
			Formatted: domain.FormatMoney(it.Amount),
		})
	}

	e.writeJSON(w, r, resp)
}

// POST /api/pool/estimate/pdf
func (e *Env) HandleEstimatePDF(w http.ResponseWriter, r *http.Request) {
	est, ok := e.estimateFromRequest(w, r)
	if !ok {
		return
	}

	body, err := report.GeneratePDF(est)
	if err != nil {
		zap.S().Named("handlers").Errorw("failed to render pdf", "reference", est.Reference, "error", err)
		http.Error(w, "pdf error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="pool-estimate-`+est.ShortReference()+`.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	_, _ = w.Write(body)
}

// GET /api/stats
func (e *Env) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	st, err := e.estimateStats(r.Context())
	if err != nil {
		zap.S().Named("handlers").Errorw("failed to load stats", "error", err)
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	e.writeJSON(w, r, st)
}
