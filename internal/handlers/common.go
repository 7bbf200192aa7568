// internal/handlers/common.go

package handlers

import (
	"database/sql"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/go-chi/render"

	"pool-calc-backend/internal/domain"
	"pool-calc-backend/internal/metrics"
)

// Env хранит зависимости для хендлеров.
type Env struct {
	DB *sql.DB

	mu      sync.RWMutex
	catalog *domain.PoolCatalog

	// bcrypt-хеш пароля администратора; пусто — админские ручки закрыты
	AdminPasswordHash string

	// значения по умолчанию, таблица settings их перекрывает
	TelegramBotToken string
	TelegramChatID   string
	TelegramAPIBase  string // "https://api.telegram.org", подменяется в тестах
	HTTPClient       *http.Client

	Metrics *metrics.Wizard

	// счётчик смет, если БД нет
	estimateCount atomic.Int64
}

// NewEnv — Env с каталогом
func NewEnv(db *sql.DB, catalog *domain.PoolCatalog) *Env {
	if catalog == nil {
		catalog = domain.NewDefaultPoolCatalog()
	}
	return &Env{
		DB:              db,
		catalog:         catalog,
		TelegramAPIBase: "https://api.telegram.org",
	}
}

// Catalog — текущий каталог опций. Каталог после публикации не меняется,
// обновление целиком подменяет указатель.
func (e *Env) Catalog() *domain.PoolCatalog {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.catalog
}

func (e *Env) setCatalog(c *domain.PoolCatalog) {
	e.mu.Lock()
	e.catalog = c
	e.mu.Unlock()
}

// writeJSON — простой helper для JSON-ответов
func (e *Env) writeJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	render.JSON(w, r, v)
}

// decodeJSON читает тело запроса; при ошибке сам отвечает 400
func (e *Env) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer r.Body.Close()
	if err := render.DecodeJSON(r.Body, v); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
