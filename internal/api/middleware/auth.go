package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

const (
	// HeaderUserID идентификатор администратора, проставляется шлюзом
	HeaderUserID = "X-User-ID"

	// HeaderUserRole роль пользователя, проставляется шлюзом
	HeaderUserRole = "X-User-Role"

	// HeaderManageToken клиентский токен управления заявкой
	HeaderManageToken = "X-Manage-Token"

	// RoleStaff роль сотрудника с доступом к админским операциям
	RoleStaff = "staff"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth проверяет наличие заголовка X-User-ID и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(HeaderUserID)
		if userID == "" {
			respondError(w, http.StatusUnauthorized, "отсутствует заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StaffOnly пропускает только пользователей с ролью staff
func StaffOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderUserRole) != RoleStaff {
			respondError(w, http.StatusForbidden, "доступ только для сотрудников")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserID извлекает идентификатор пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

// GetManageToken извлекает клиентский токен управления из заголовка
func GetManageToken(r *http.Request) string {
	return r.Header.Get(HeaderManageToken)
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
