package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"pool-calc-backend/internal/domain"
)

// Settings — строка таблицы settings (id = 1)
type Settings struct {
	TelegramBotToken string `json:"telegramBotToken"`
	TelegramChatID   string `json:"telegramChatId"`
}

// EstimateStats — счётчик финальных смет
type EstimateStats struct {
	EstimateCount  int64      `json:"estimateCount"`
	LastEstimateAt *time.Time `json:"lastEstimateAt,omitempty"`
}

// saveCatalog сохраняет каталог в pool_catalog; без БД ничего не делает
func (e *Env) saveCatalog(ctx context.Context, c *domain.PoolCatalog) error {
	if e.DB == nil {
		return nil
	}

	body, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal catalog")
	}

	_, err = e.DB.ExecContext(ctx, `
INSERT INTO pool_catalog (id, body, updated_at)
VALUES (1, $1, NOW())
ON CONFLICT (id) DO UPDATE
  SET body       = EXCLUDED.body,
      updated_at = EXCLUDED.updated_at;
`, string(body))
	return errors.Wrap(err, "save catalog")
}

// loadSettings — настройки из БД, поверх значений из окружения.
// Пустые колонки значения из окружения не затирают.
func (e *Env) loadSettings(ctx context.Context) (Settings, error) {
	e.mu.RLock()
	s := Settings{
		TelegramBotToken: e.TelegramBotToken,
		TelegramChatID:   e.TelegramChatID,
	}
	e.mu.RUnlock()
	if e.DB == nil {
		return s, nil
	}

	var token, chatID sql.NullString
	err := e.DB.QueryRowContext(ctx, `
SELECT telegram_bot_token, telegram_chat_id
FROM settings
WHERE id = 1;
`).Scan(&token, &chatID)
	if err != nil {
		if err == sql.ErrNoRows {
			return s, nil
		}
		return s, errors.Wrap(err, "load settings")
	}

	if token.String != "" {
		s.TelegramBotToken = token.String
	}
	if chatID.String != "" {
		s.TelegramChatID = chatID.String
	}
	return s, nil
}

// saveSettings пишет настройки; без БД обновляет значения в памяти
func (e *Env) saveSettings(ctx context.Context, s Settings) error {
	if e.DB == nil {
		e.mu.Lock()
		e.TelegramBotToken = s.TelegramBotToken
		e.TelegramChatID = s.TelegramChatID
		e.mu.Unlock()
		return nil
	}

	_, err := e.DB.ExecContext(ctx, `
INSERT INTO settings (id, telegram_bot_token, telegram_chat_id)
VALUES (1, $1, $2)
ON CONFLICT (id) DO UPDATE
  SET telegram_bot_token = EXCLUDED.telegram_bot_token,
      telegram_chat_id   = EXCLUDED.telegram_chat_id;
`, s.TelegramBotToken, s.TelegramChatID)
	return errors.Wrap(err, "save settings")
}

// incrementEstimateCount увеличивает счётчик смет
func (e *Env) incrementEstimateCount(ctx context.Context) error {
	if e.DB == nil {
		e.estimateCount.Add(1)
		return nil
	}

	_, err := e.DB.ExecContext(ctx, `
UPDATE estimate_stats
SET estimate_count = estimate_count + 1,
    last_estimate_at = NOW()
WHERE id = 1;
`)
	return errors.Wrap(err, "increment estimate count")
}

// estimateStats — текущее значение счётчика
func (e *Env) estimateStats(ctx context.Context) (EstimateStats, error) {
	if e.DB == nil {
		return EstimateStats{EstimateCount: e.estimateCount.Load()}, nil
	}

	var (
		st   EstimateStats
		last sql.NullTime
	)
	err := e.DB.QueryRowContext(ctx, `
SELECT estimate_count, last_estimate_at
FROM estimate_stats
WHERE id = 1;
`).Scan(&st.EstimateCount, &last)
	if err != nil {
		if err == sql.ErrNoRows {
			return st, nil
		}
		return st, errors.Wrap(err, "load estimate stats")
	}
	if last.Valid {
		st.LastEstimateAt = &last.Time
	}
	return st, nil
}
