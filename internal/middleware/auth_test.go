package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"jobportal/internal/domain"
	"jobportal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: make(map[string]*domain.Session)}
}

func (s *memorySessions) Create(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *memorySessions) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id], nil
}

func (s *memorySessions) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *memorySessions) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

func signedToken(t *testing.T, userID uuid.UUID, role domain.Role, sessionID string, ttl time.Duration) string {
	t.Helper()
	claims := &service.Claims{
		UserID:    userID,
		Role:      role,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func testRouter(sessions domain.SessionStore, roles ...domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := []gin.HandlerFunc{Auth(testSecret, sessions)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		principal, _ := CurrentPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"user_id": principal.UserID})
	})
	router.GET("/protected", handlers...)
	return router
}

func request(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthAcceptsValidToken(t *testing.T) {
	sessions := newMemorySessions()
	userID := uuid.New()
	require.NoError(t, sessions.Create(context.Background(), &domain.Session{
		ID: "sess-1", UserID: userID, Role: domain.RoleJobSeeker,
	}))
	token := signedToken(t, userID, domain.RoleJobSeeker, "sess-1", time.Hour)

	rec := request(testRouter(sessions), "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMissingAndMalformedHeader(t *testing.T) {
	router := testRouter(newMemorySessions())

	assert.Equal(t, http.StatusUnauthorized, request(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, "Bearer ").Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, "Bearer not-a-jwt").Code)
}

func TestAuthExpiredToken(t *testing.T) {
	sessions := newMemorySessions()
	token := signedToken(t, uuid.New(), domain.RoleJobSeeker, "sess-1", -time.Minute)

	rec := request(testRouter(sessions), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRevokedSession(t *testing.T) {
	sessions := newMemorySessions()
	userID := uuid.New()
	require.NoError(t, sessions.Create(context.Background(), &domain.Session{
		ID: "sess-1", UserID: userID, Role: domain.RoleJobSeeker,
	}))
	token := signedToken(t, userID, domain.RoleJobSeeker, "sess-1", time.Hour)

	require.NoError(t, sessions.DeleteByUserID(context.Background(), userID))

	rec := request(testRouter(sessions), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	sessions := newMemorySessions()
	userID := uuid.New()
	require.NoError(t, sessions.Create(context.Background(), &domain.Session{
		ID: "sess-1", UserID: userID, Role: domain.RoleJobSeeker,
	}))
	token := signedToken(t, userID, domain.RoleJobSeeker, "sess-1", time.Hour)

	allowed := testRouter(sessions, domain.RoleJobSeeker)
	assert.Equal(t, http.StatusOK, request(allowed, "Bearer "+token).Code)

	denied := testRouter(sessions, domain.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, request(denied, "Bearer "+token).Code)
}
