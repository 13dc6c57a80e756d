package middleware

import (
	"context"
	"net/http"
	"strings"
)

// StaffLoginHeader заголовок с логином сотрудника.
// Аутентификацию выполняет внешний gateway, сюда приходит уже проверенный логин.
const StaffLoginHeader = "X-Staff-Login"

type contextKey string

const staffLoginKey contextKey = "staffLogin"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// StaffAuth проверяет наличие логина сотрудника и кладет его в контекст.
// Запросы без логина отклоняются с 401 до входа в хендлер.
func StaffAuth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			login := strings.TrimSpace(r.Header.Get(StaffLoginHeader))
			if login == "" {
				logger.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, StaffLoginHeader)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"отсутствует логин сотрудника"}`))
				return
			}

			ctx := context.WithValue(r.Context(), staffLoginKey, login)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetStaffLogin возвращает логин сотрудника из контекста
func GetStaffLogin(ctx context.Context) (string, bool) {
	login, ok := ctx.Value(staffLoginKey).(string)
	return login, ok
}
