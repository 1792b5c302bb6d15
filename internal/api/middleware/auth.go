package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/Marina-SlipService/internal/api/handlers"
	"github.com/m04kA/Marina-SlipService/internal/domain"
)

const (
	// HeaderUserID заголовок с идентификатором аутентифицированного пользователя
	HeaderUserID = "X-User-ID"

	// HeaderStaffRole заголовок с ролью сотрудника марины
	// Выставляется шлюзом только для верифицированных сотрудников
	HeaderStaffRole = "X-Staff-Role"

	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный заголовок X-User-ID"
)

type actorCtxKey struct{}

// Auth извлекает личность инициатора из заголовков запроса
// Аутентификацию выполняет шлюз; сервис доверяет заголовкам
// и только собирает из них ActorContext
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(HeaderUserID)
		if userIDStr == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgInvalidUserID)
			return
		}

		actor := domain.ActorContext{
			UserID:  userID,
			IsStaff: r.Header.Get(HeaderStaffRole) != "",
		}

		ctx := context.WithValue(r.Context(), actorCtxKey{}, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext возвращает ActorContext, положенный middleware Auth
func ActorFromContext(ctx context.Context) (domain.ActorContext, bool) {
	actor, ok := ctx.Value(actorCtxKey{}).(domain.ActorContext)
	return actor, ok
}
