package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/domain"
)

const (
	headerUserID    = "X-User-ID"
	headerUserRole  = "X-User-Role"
	headerPartnerID = "X-Partner-ID"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgInvalidToken = "некорректный токен авторизации"
	msgForbidden    = "доступ запрещен"
)

var (
	errNoCredentials = errors.New("no credentials")
	errBadClaims     = errors.New("invalid token claims")
)

type contextKey string

const actorKey contextKey = "actor"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Claims полезная нагрузка JWT
type Claims struct {
	Role      string `json:"role"`
	PartnerID *int64 `json:"partner_id,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator определяет вызывающего по Bearer JWT (HS256)
// Без секрета используются заголовки X-User-* от API gateway
type Authenticator struct {
	secret []byte
	logger Logger
}

// NewAuthenticator создает аутентификатор
func NewAuthenticator(jwtSecret string, logger Logger) *Authenticator {
	return &Authenticator{secret: []byte(jwtSecret), logger: logger}
}

// Auth требует аутентификацию
func (a *Authenticator) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := a.authenticate(r)
		if err != nil {
			a.logger.Warn("%s %s - unauthorized: %v", r.Method, r.URL.Path, err)
			if errors.Is(err, errNoCredentials) {
				handlers.RespondUnauthorized(w, msgUnauthorized)
			} else {
				handlers.RespondUnauthorized(w, msgInvalidToken)
			}
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// OptionalAuth добавляет вызывающего в контекст, если он представился
// Некорректные учетные данные отклоняются так же, как в Auth
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := a.authenticate(r)
		switch {
		case errors.Is(err, errNoCredentials):
			next.ServeHTTP(w, r)
		case err != nil:
			a.logger.Warn("%s %s - invalid credentials: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
		default:
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		}
	})
}

// RequireRole пропускает только указанные роли (после Auth)
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActor(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}
			for _, role := range roles {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			handlers.RespondForbidden(w, msgForbidden)
		})
	}
}

// WithActor кладет вызывающего в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor извлекает вызывающего из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	actor, ok := GetActor(ctx)
	if !ok {
		return 0, false
	}
	return actor.UserID, true
}

func (a *Authenticator) authenticate(r *http.Request) (domain.Actor, error) {
	if len(a.secret) > 0 {
		return a.fromBearer(r.Header.Get("Authorization"))
	}
	return fromHeaders(r.Header)
}

func (a *Authenticator) fromBearer(header string) (domain.Actor, error) {
	if header == "" {
		return domain.Actor{}, errNoCredentials
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return domain.Actor{}, errors.New("invalid authorization header")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Actor{}, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Actor{}, fmt.Errorf("%w: sub %q", errBadClaims, claims.Subject)
	}

	return newActor(userID, claims.Role, claims.PartnerID)
}

func fromHeaders(h http.Header) (domain.Actor, error) {
	rawID := h.Get(headerUserID)
	if rawID == "" {
		return domain.Actor{}, errNoCredentials
	}

	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Actor{}, fmt.Errorf("invalid %s header", headerUserID)
	}

	var partnerID *int64
	if rawPartner := h.Get(headerPartnerID); rawPartner != "" {
		id, err := strconv.ParseInt(rawPartner, 10, 64)
		if err != nil {
			return domain.Actor{}, fmt.Errorf("invalid %s header", headerPartnerID)
		}
		partnerID = &id
	}

	return newActor(userID, h.Get(headerUserRole), partnerID)
}

func newActor(userID int64, rawRole string, partnerID *int64) (domain.Actor, error) {
	role := domain.RoleClient
	if rawRole != "" {
		parsed, err := domain.ParseRole(rawRole)
		if err != nil {
			return domain.Actor{}, err
		}
		role = parsed
	}

	if role == domain.RolePartner && partnerID == nil {
		return domain.Actor{}, fmt.Errorf("%w: partner role without partner id", errBadClaims)
	}

	return domain.Actor{UserID: userID, Role: role, PartnerID: partnerID}, nil
}
