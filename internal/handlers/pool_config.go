package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"pool-calc-backend/internal/domain"
)

// HandlePoolConfig — каталог опций мастера.
//
// GET  -> текущий каталог (публично, его рисует фронт).
// POST -> заменить каталог целиком (только админ). Если есть БД — сохраняем.
func (e *Env) HandlePoolConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		e.writeJSON(w, r, e.Catalog())

	case http.MethodPost:
		if !e.requireAdmin(w, r) {
			return
		}

		var cfg domain.PoolCatalog
		if !e.decodeJSON(w, r, &cfg) {
			return
		}
		if len(cfg.Steps) == 0 {
			cfg.Steps = domain.DefaultWizardSteps()
		}
		if err := cfg.Check(); err != nil {
			http.Error(w, "invalid catalog: "+err.Error(), http.StatusBadRequest)
			return
		}

		if err := e.saveCatalog(r.Context(), &cfg); err != nil {
			zap.S().Named("handlers").Errorw("failed to save catalog", "error", err)
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		e.setCatalog(&cfg)
		zap.S().Named("handlers").Infow("pool catalog updated", "groups", len(cfg.Groups))
		e.writeJSON(w, r, e.Catalog())

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
