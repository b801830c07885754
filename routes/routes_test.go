package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/casting-agency/handlers"
	"github.com/upb/casting-agency/internal/auth"
	"github.com/upb/casting-agency/internal/authtest"
	"github.com/upb/casting-agency/jwks"
	"github.com/upb/casting-agency/middleware"
	"github.com/upb/casting-agency/models"
	"github.com/upb/casting-agency/services"
	"github.com/upb/casting-agency/verifier"
	"go.uber.org/zap"
)

type mockActors struct{ mock.Mock }

func (m *mockActors) List(ctx context.Context) ([]*models.Actor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Actor), args.Error(1)
}

func (m *mockActors) Create(ctx context.Context, req *services.CreateActorRequest) (*models.Actor, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(*models.Actor), args.Error(1)
}

func (m *mockActors) Update(ctx context.Context, id int64, req *services.UpdateActorRequest) (*models.Actor, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(*models.Actor), args.Error(1)
}

func (m *mockActors) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockMovies struct{ mock.Mock }

func (m *mockMovies) List(ctx context.Context) ([]*models.Movie, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Movie), args.Error(1)
}

func (m *mockMovies) Create(ctx context.Context, req *services.CreateMovieRequest) (*models.Movie, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *mockMovies) Update(ctx context.Context, id int64, req *services.UpdateMovieRequest) (*models.Movie, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *mockMovies) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type testServer struct {
	handler http.Handler
	issuer  *authtest.Issuer
	actors  *mockActors
	movies  *mockMovies
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	issuer := authtest.NewIssuer(t)
	provider := jwks.NewStaticProvider(issuer.KeySet())

	v, err := verifier.New(verifier.Config{
		Issuer:   issuer.URL(),
		Audience: issuer.Audience,
	}, provider)
	require.NoError(t, err)

	logger := zap.NewNop()
	actors := new(mockActors)
	movies := new(mockMovies)

	h := New(Options{
		Guard:          middleware.NewAuthMiddleware(v, logger),
		Actors:         handlers.NewActorHandler(actors, logger),
		Movies:         handlers.NewMovieHandler(movies, logger),
		Health:         handlers.NewHealthHandler(nil, provider, logger),
		Logger:         logger,
		MetricsEnabled: true,
	})

	return &testServer{handler: h, issuer: issuer, actors: actors, movies: movies}
}

func (s *testServer) do(method, path, authorization, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	if authorization != "" {
		r.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	return w
}

func bearer(token string) string { return "Bearer " + token }

type authFailure struct {
	Success bool `json:"success"`
	Error   int  `json:"error"`
	Message struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"message"`
}

func assertRejected(t *testing.T, w *httptest.ResponseRecorder, code, description string) {
	t.Helper()
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body authFailure
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, 401, body.Error)
	assert.Equal(t, code, body.Message.Code)
	if description != "" {
		assert.Equal(t, description, body.Message.Description)
	}
}

func TestProtectedRoutes_Granted(t *testing.T) {
	s := newTestServer(t)
	token := s.issuer.Token(t, auth.AllPermissions...)

	actor := &models.Actor{ID: 1, Name: "Ada", Gender: models.GenderFemale}
	movie := &models.Movie{ID: 2, Title: "Metropolis", ReleaseDate: models.NewDate(1927, time.January, 10)}

	s.actors.On("List", mock.Anything).Return([]*models.Actor{actor}, nil).Once()
	s.actors.On("Create", mock.Anything, mock.Anything).Return(actor, nil).Once()
	s.actors.On("Update", mock.Anything, int64(1), mock.Anything).Return(actor, nil).Once()
	s.actors.On("Delete", mock.Anything, int64(1)).Return(nil).Once()
	s.movies.On("List", mock.Anything).Return([]*models.Movie{movie}, nil).Once()
	s.movies.On("Create", mock.Anything, mock.Anything).Return(movie, nil).Once()
	s.movies.On("Update", mock.Anything, int64(2), mock.Anything).Return(movie, nil).Once()
	s.movies.On("Delete", mock.Anything, int64(2)).Return(nil).Once()

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/actors", ""},
		{http.MethodPost, "/actors", `{"name":"Ada","age":36,"gender":"female"}`},
		{http.MethodPatch, "/actors/1", `{"age":37}`},
		{http.MethodDelete, "/actors/1", ""},
		{http.MethodGet, "/movies", ""},
		{http.MethodPost, "/movies", `{"title":"Metropolis","release_date":"1927-01-10"}`},
		{http.MethodPatch, "/movies/2", `{"title":"Metropolis"}`},
		{http.MethodDelete, "/movies/2", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := s.do(tt.method, tt.path, bearer(token), tt.body)
			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"success":true`)
		})
	}

	// Each operation ran exactly once
	s.actors.AssertExpectations(t)
	s.movies.AssertExpectations(t)
}

func TestProtectedRoutes_EachRequiresItsOwnPermission(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method     string
		path       string
		permission string
	}{
		{http.MethodGet, "/actors", auth.PermGetActors},
		{http.MethodPost, "/actors", auth.PermPostActors},
		{http.MethodPatch, "/actors/1", auth.PermPatchActors},
		{http.MethodDelete, "/actors/1", auth.PermDeleteActors},
		{http.MethodGet, "/movies", auth.PermGetMovies},
		{http.MethodPost, "/movies", auth.PermPostMovies},
		{http.MethodPatch, "/movies/1", auth.PermPatchMovies},
		{http.MethodDelete, "/movies/1", auth.PermDeleteMovies},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			// Every permission except the required one
			var others []string
			for _, p := range auth.AllPermissions {
				if p != tt.permission {
					others = append(others, p)
				}
			}
			w := s.do(tt.method, tt.path, bearer(s.issuer.Token(t, others...)), `{}`)
			assertRejected(t, w, auth.CodeUnauthorized, "Permission not found.")
		})
	}

	s.actors.AssertNotCalled(t, "List", mock.Anything)
	s.movies.AssertNotCalled(t, "List", mock.Anything)
}

func TestProtectedRoutes_Rejections(t *testing.T) {
	s := newTestServer(t)
	now := time.Now()

	expired := s.issuer.Claims([]string{auth.PermGetActors})
	expired["iat"] = now.Add(-2 * time.Hour).Unix()
	expired["exp"] = now.Add(-time.Hour).Unix()

	wrongAudience := s.issuer.Claims([]string{auth.PermGetActors})
	wrongAudience["aud"] = "someone-else"

	wrongIssuer := s.issuer.Claims([]string{auth.PermGetActors})
	wrongIssuer["iss"] = "https://evil.example.com/"

	other := authtest.NewIssuer(t)
	rotated := *s.issuer
	rotated.KeyID = "rotated-away"

	tests := []struct {
		name          string
		authorization string
		code          string
		description   string
	}{
		{"missing header", "", auth.CodeHeaderMissing, "Authorization header is expected."},
		{"wrong scheme", "Token abc.def.ghi", auth.CodeInvalidHeader, `Authorization header must start with "Bearer".`},
		{"bearer alone", "Bearer", auth.CodeInvalidHeader, "Authorization header must be bearer token."},
		{"three parts", "Bearer a b", auth.CodeInvalidHeader, "Authorization header must be bearer token."},
		{"garbage token", "Bearer not-a-jwt", auth.CodeInvalidHeader, "Unable to parse authentication token."},
		{"unknown key", bearer(rotated.Token(t, auth.PermGetActors)), auth.CodeInvalidHeader, "Unable to find the appropriate key."},
		{"untrusted signature", bearer(other.Token(t, auth.PermGetActors)), auth.CodeInvalidHeader, "Unable to parse authentication token."},
		{"expired", bearer(s.issuer.Sign(t, expired)), auth.CodeTokenExpired, "Token expired."},
		{"wrong audience", bearer(s.issuer.Sign(t, wrongAudience)), auth.CodeInvalidClaims, "Incorrect claims. Please, check the audience and issuer."},
		{"wrong issuer", bearer(s.issuer.Sign(t, wrongIssuer)), auth.CodeInvalidClaims, "Incorrect claims. Please, check the audience and issuer."},
		{"permissions absent", bearer(s.issuer.Sign(t, s.issuer.Claims(nil))), auth.CodeInvalidClaims, "Permissions not included in JWT."},
		{"permissions empty", bearer(s.issuer.Token(t)), auth.CodeUnauthorized, "Permission not found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodGet, "/actors", tt.authorization, "")
			assertRejected(t, w, tt.code, tt.description)
		})
	}

	s.actors.AssertNotCalled(t, "List", mock.Anything)
}

func TestProtectedRoutes_ReadOnlyTokenCannotPatch(t *testing.T) {
	s := newTestServer(t)
	token := s.issuer.Token(t, auth.PermGetActors, auth.PermGetMovies)

	w := s.do(http.MethodPatch, "/actors/1", bearer(token), `{"age":40}`)

	assertRejected(t, w, auth.CodeUnauthorized, "Permission not found.")
	s.actors.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProtectedRoutes_ServiceErrorsAfterGrant(t *testing.T) {
	s := newTestServer(t)
	token := s.issuer.Token(t, auth.PermPatchMovies, auth.PermPostActors)

	s.movies.On("Update", mock.Anything, int64(404), mock.Anything).
		Return((*models.Movie)(nil), services.ErrMovieNotFound)

	w := s.do(http.MethodPatch, "/movies/404", bearer(token), `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/actors", bearer(token), `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":400,"message":"unprocessable"}`, w.Body.String())
}

func TestRouting_NotFoundAndMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodDelete, "/actors/abc", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "non-integer ids never reach the guard")
	assert.JSONEq(t, `{"success":false,"error":404,"message":"resource not found"}`, w.Body.String())

	w = s.do(http.MethodGet, "/directors", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPut, "/actors", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"success":false,"error":405,"message":"method not allowed"}`, w.Body.String())
}

func TestUnprotectedRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/readyz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"jwks":"healthy"`)

	// Produce at least one guard decision so the counter is exported
	s.do(http.MethodGet, "/actors", "", "")
	w = s.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "casting_guard_decisions_total")
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	r := httptest.NewRequest(http.MethodOptions, "/actors", nil)
	r.Header.Set("Origin", "https://casting.example.com")
	r.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	r.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)

	assert.Equal(t, "https://casting.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
