package middleware

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/owaies/QuizApp/pkg/auth"
)

// identityKey ключ, под которым проверенная личность хранится в контексте Gin
const identityKey = "identity"

// TokenParser проверяет токен сессии
type TokenParser interface {
	ParseToken(tokenString string) (*auth.Claims, error)
}

// AuthMiddleware обеспечивает аутентификацию для защищенных маршрутов
type AuthMiddleware struct {
	tokens TokenParser
}

// NewAuthMiddleware создает новый middleware аутентификации
func NewAuthMiddleware(tokens TokenParser) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth требует валидный Bearer токен.
// Нет токена: 401 "Unauthorized". Поврежденный или истекший: 401 "Invalid token".
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := m.tokens.ParseToken(token)
		if err != nil {
			log.Debugf("[AuthMiddleware] Токен отклонен для %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(identityKey, claims.Identity())
		c.Next()
	}
}

// OptionalAuth разбирает токен, если он передан. Невалидный токен игнорируется,
// и запрос продолжается как анонимный.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := m.tokens.ParseToken(token); err == nil {
				c.Set(identityKey, claims.Identity())
			}
		}
		c.Next()
	}
}

// AdminOnly пропускает только администраторов. Должен идти после RequireAuth.
func (m *AuthMiddleware) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !identity.IsAdmin() {
			log.Warnf("[AuthMiddleware] Пользователь ID=%d без прав администратора: %s %s",
				identity.UserID, c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

// GetIdentity возвращает личность, установленную RequireAuth или OptionalAuth
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return auth.Identity{}, false
	}
	identity, ok := value.(auth.Identity)
	return identity, ok
}

// bearerToken извлекает токен из заголовка "Authorization: Bearer <token>"
func bearerToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
