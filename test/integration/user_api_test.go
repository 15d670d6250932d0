package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"user-account-service/internal/adapter/db/postgres"
	"user-account-service/internal/adapter/gin/handler"
	"user-account-service/internal/adapter/gin/router"
	authusecase "user-account-service/internal/usecase/auth"
	userusecase "user-account-service/internal/usecase/user"
	"user-account-service/pkg/token"
)

// UserAPITestSuite exercises the full HTTP stack against an in-memory store:
// router, middleware, handlers, usecases, and the real repository adapter.
type UserAPITestSuite struct {
	suite.Suite
	engine *gin.Engine
	tokens *token.Manager
}

func (s *UserAPITestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)

	log := zaptest.NewLogger(s.T())
	repo := postgres.NewUserRepoPG(db, "users", log)
	s.Require().NoError(repo.Migrate())

	s.tokens = token.NewManager([]byte("integration-secret"), "user-account-service", "user-account-clients")

	directory := userusecase.New(repo, log)
	authenticator := authusecase.New(repo, s.tokens, log)

	s.engine = router.SetupRouter(
		handler.NewUserHandler(directory, log),
		handler.NewAuthHandler(authenticator, log),
		s.tokens,
		log,
	)
}

func (s *UserAPITestSuite) do(method, path, bearer string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *UserAPITestSuite) bearer() string {
	signed, err := s.tokens.Issue("admin@example.com")
	s.Require().NoError(err)
	return signed
}

func (s *UserAPITestSuite) createUser(bearer, email, password string) string {
	w := s.do("POST", "/v1/users", bearer, gin.H{"email": email, "password": password})
	s.Require().Equal(http.StatusCreated, w.Code)

	var created struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	s.Require().NotEmpty(created.ID)
	return created.ID
}

func (s *UserAPITestSuite) TestCRUDRoundTrip() {
	bearer := s.bearer()
	id := s.createUser(bearer, "alice@example.com", "correct-password")

	// Read back
	w := s.do("GET", "/v1/users/"+id, bearer, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "alice@example.com")
	s.NotContains(w.Body.String(), "correct-password")
	s.NotContains(w.Body.String(), "$2a$")

	// Replace
	w = s.do("PUT", "/v1/users/"+id, bearer, gin.H{"email": "alice2@example.com", "password": "another-password"})
	s.Equal(http.StatusNoContent, w.Code)

	w = s.do("GET", "/v1/users/"+id, bearer, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "alice2@example.com")

	// Delete, then the record is gone
	w = s.do("DELETE", "/v1/users/"+id, bearer, nil)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.do("GET", "/v1/users/"+id, bearer, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do("DELETE", "/v1/users/"+id, bearer, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *UserAPITestSuite) TestDuplicateEmailConflict() {
	bearer := s.bearer()
	s.createUser(bearer, "alice@example.com", "correct-password")

	w := s.do("POST", "/v1/users", bearer, gin.H{"email": "alice@example.com", "password": "other-password"})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *UserAPITestSuite) TestAuthenticateFlow() {
	bearer := s.bearer()
	s.createUser(bearer, "alice@example.com", "correct-password")

	// Valid credentials yield a token that opens protected routes.
	w := s.do("POST", "/v1/users/authenticate", "", gin.H{"email": "alice@example.com", "password": "correct-password"})
	s.Require().Equal(http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().NotEmpty(resp.Token)

	claims, err := s.tokens.Validate(resp.Token)
	s.Require().NoError(err)
	s.Equal("alice@example.com", claims.Subject)

	w = s.do("GET", "/v1/users", resp.Token, nil)
	s.Equal(http.StatusOK, w.Code)

	// Unknown account and wrong password are indistinguishable.
	unknown := s.do("POST", "/v1/users/authenticate", "", gin.H{"email": "nobody@example.com", "password": "x-password"})
	wrong := s.do("POST", "/v1/users/authenticate", "", gin.H{"email": "alice@example.com", "password": "wrong-password"})
	s.Equal(http.StatusUnauthorized, unknown.Code)
	s.Equal(http.StatusUnauthorized, wrong.Code)
	s.Equal(unknown.Body.String(), wrong.Body.String())
}

func (s *UserAPITestSuite) TestProtectedRoutesRequireToken() {
	paths := []struct{ method, path string }{
		{"GET", "/v1/users"},
		{"POST", "/v1/users"},
		{"GET", "/v1/users/0f0e7a26-42f5-4b61-8a7f-0d5a2f3a9a11"},
		{"PUT", "/v1/users/0f0e7a26-42f5-4b61-8a7f-0d5a2f3a9a11"},
		{"DELETE", "/v1/users/0f0e7a26-42f5-4b61-8a7f-0d5a2f3a9a11"},
	}
	for _, p := range paths {
		w := s.do(p.method, p.path, "", nil)
		s.Equal(http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}
}

func (s *UserAPITestSuite) TestUpdatePreservesIdentifier() {
	bearer := s.bearer()
	id := s.createUser(bearer, "alice@example.com", "correct-password")

	// The payload cannot move the record to a new identifier; a replace
	// against the original id keeps serving it.
	w := s.do("PUT", "/v1/users/"+id, bearer, gin.H{"email": "moved@example.com", "password": "another-password"})
	s.Equal(http.StatusNoContent, w.Code)

	w = s.do("GET", "/v1/users/"+id, bearer, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), id)
}

func (s *UserAPITestSuite) TestHealthEndpointIsPublic() {
	w := s.do("GET", "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

func TestUserAPITestSuite(t *testing.T) {
	suite.Run(t, new(UserAPITestSuite))
}
