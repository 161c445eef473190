package handler

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/L968/trecco-api/internal/jwtauth"
	"github.com/L968/trecco-api/internal/users/models"
	"github.com/L968/trecco-api/internal/users/service"
	"github.com/L968/trecco-api/internal/users/store/memory"
	"github.com/L968/trecco-api/pkg/testutil"
)

func newRouter() chi.Router {
	log := slog.New(slog.DiscardHandler)
	jwtService := jwtauth.NewJWTService("test-signing-key", "test-issuer", time.Hour)
	svc := service.New(memory.NewInMemory(), jwtService)

	router := chi.NewRouter()
	New(svc, log).Register(router)
	return router
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	router := newRouter()

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/register",
		registerRequest{Name: "Ada", Email: "ada@example.com", Password: "correct horse"}))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	user := testutil.UnmarshalResponse[models.User](t, rr)
	assert.Equal(t, "ada@example.com", user.Email)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/login",
		loginRequest{Email: "ada@example.com", Password: "correct horse"}))
	testutil.AssertStatus(t, rr, http.StatusOK)
	login := testutil.UnmarshalResponse[loginResponse](t, rr)
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "Bearer", login.TokenType)
	assert.Equal(t, user.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := newRouter()

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/register",
		registerRequest{Email: "ada@example.com", Password: "correct horse"}))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/register",
		registerRequest{Email: "ada@example.com", Password: "battery staple"}))
	testutil.AssertStatusAndError(t, rr, http.StatusConflict, "User.EmailTaken")
}

func TestLoginBadCredentials(t *testing.T) {
	router := newRouter()

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/login",
		loginRequest{Email: "nobody@example.com", Password: "whatever"}))
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "User.InvalidCredentials")
}

func TestRegisterInvalidBody(t *testing.T) {
	router := newRouter()

	req := testutil.NewRequest(t, http.MethodPost, "/auth/register")
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "Validation")
}
