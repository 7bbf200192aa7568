package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// AdminSettingsResponse — токен бота наружу не отдаём, только признак
type AdminSettingsResponse struct {
	TelegramChatID      string `json:"telegramChatId"`
	TelegramBotTokenSet bool   `json:"telegramBotTokenSet"`
}

// AdminSettingsRequest — пустые поля не меняют текущее значение
type AdminSettingsRequest struct {
	TelegramBotToken string `json:"telegramBotToken"`
	TelegramChatID   string `json:"telegramChatId"`
}

// GET/POST /api/admin/settings
func (e *Env) HandleAdminSettings(w http.ResponseWriter, r *http.Request) {
	if !e.requireAdmin(w, r) {
		return
	}

	switch r.Method {
	case http.MethodGet:
		s, err := e.loadSettings(r.Context())
		if err != nil {
			zap.S().Named("handlers").Errorw("failed to load settings", "error", err)
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		e.writeJSON(w, r, settingsResponse(s))

	case http.MethodPost:
		var req AdminSettingsRequest
		if !e.decodeJSON(w, r, &req) {
			return
		}

		s, err := e.loadSettings(r.Context())
		if err != nil {
			zap.S().Named("handlers").Errorw("failed to load settings", "error", err)
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		// Обновляем только если что-то прислали
		if v := strings.TrimSpace(req.TelegramBotToken); v != "" {
			s.TelegramBotToken = v
		}
		if v := strings.TrimSpace(req.TelegramChatID); v != "" {
			s.TelegramChatID = v
		}

		if err := e.saveSettings(r.Context(), s); err != nil {
			zap.S().Named("handlers").Errorw("failed to save settings", "error", err)
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		e.writeJSON(w, r, settingsResponse(s))

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func settingsResponse(s Settings) AdminSettingsResponse {
	return AdminSettingsResponse{
		TelegramChatID:      s.TelegramChatID,
		TelegramBotTokenSet: s.TelegramBotToken != "",
	}
}
