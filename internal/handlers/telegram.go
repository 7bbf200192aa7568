package handlers

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"pool-calc-backend/internal/domain"
	"pool-calc-backend/internal/report"
)

// sendTelegramMessage — низкоуровневый отправитель сообщений
func (e *Env) sendTelegramMessage(ctx context.Context, text string) {
	log := zap.S().Named("telegram")

	s, err := e.loadSettings(ctx)
	if err != nil {
		log.Warnw("failed to load settings, using env values", "error", err)
	}
	token := strings.TrimSpace(s.TelegramBotToken)
	chatID := strings.TrimSpace(s.TelegramChatID)
	if token == "" || chatID == "" {
		log.Debug("skip send: empty bot token or chat id")
		return
	}

	form := url.Values{}
	form.Set("chat_id", chatID)
	form.Set("text", text)
	form.Set("parse_mode", "HTML")

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		strings.TrimRight(e.TelegramAPIBase, "/")+"/bot"+token+"/sendMessage",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		log.Errorw("failed to build request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := e.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		// в ошибке клиента есть URL с токеном, в лог его не пишем
		log.Errorw("failed to send message", "chat_id", chatID)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Warnw("non-OK status from telegram", "status", resp.Status, "chat_id", chatID)
	}
}

// telegramEstimateText — текст уведомления о новой смете
func telegramEstimateText(est report.Estimate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏊 Новая смета #%s\n\n", est.ShortReference())
	for _, l := range est.SelectionLines() {
		opts := make([]string, len(l.Options))
		for i, o := range l.Options {
			opts[i] = html.EscapeString(o)
		}
		fmt.Fprintf(&b, "%s: %s\n", html.EscapeString(l.Group), strings.Join(opts, ", "))
	}
	fmt.Fprintf(&b, "\nИтого: %s\nВилка: %s – %s",
		domain.FormatMoney(est.Result.Breakdown.Total),
		domain.FormatMoney(est.Result.LowEstimate),
		domain.FormatMoney(est.Result.HighEstimate),
	)
	return b.String()
}

// NotifyTelegramPoolEstimate — уведомление о новой смете.
// Отправляем на фоне с независимым контекстом, ответ клиенту не ждёт.
func (e *Env) NotifyTelegramPoolEstimate(est report.Estimate) {
	text := telegramEstimateText(est)
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		e.sendTelegramMessage(bgCtx, text)
	}()
}
