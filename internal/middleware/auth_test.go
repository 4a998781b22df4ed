package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"smartsub/internal/middleware"
	"smartsub/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "auth-test-secret"

func callWithHeader(t *testing.T, header string) (string, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var caller string
	handler := middleware.JWTAuth(secret)(func(c echo.Context) error {
		caller = middleware.CallerAddress(c)
		return nil
	})

	err := handler(c)
	return caller, err
}

func TestJWTAuth_ResolvesCaller(t *testing.T) {
	token, err := middleware.GenerateToken(secret, "0xabc")
	require.NoError(t, err)

	caller, err := callWithHeader(t, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", caller)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	_, err := callWithHeader(t, "")
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestJWTAuth_WrongScheme(t *testing.T) {
	_, err := callWithHeader(t, "Basic abc123")
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	token, err := middleware.GenerateToken("some-other-secret", "0xabc")
	require.NoError(t, err)

	_, err = callWithHeader(t, "Bearer "+token)
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestJWTAuth_EmptySubject(t *testing.T) {
	token, err := middleware.GenerateToken(secret, "")
	require.NoError(t, err)

	_, err = callWithHeader(t, "Bearer "+token)
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}
