package handlers

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminUser — логин администратора для basic auth
const AdminUser = "admin"

// requireAdmin — проверка basic auth администратора по bcrypt-хешу
func (e *Env) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if e.AdminPasswordHash == "" {
		http.Error(w, "admin access is not configured", http.StatusForbidden)
		return false
	}

	user, pass, ok := r.BasicAuth()
	if !ok {
		w.Header().Set("WWW-Authenticate", `Basic realm="pool-calc"`)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	if user != AdminUser || !CheckPassword(e.AdminPasswordHash, pass) {
		zap.S().Named("handlers").Warnw("admin auth failed", "user", user, "remote_addr", r.RemoteAddr)
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}

// HashPassword — bcrypt-хеш для POOLCALC_ADMIN_PASSWORD_HASH
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword сверяет пароль с хешем
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
