package middleware

import (
	"fmt"
	"smartsub/internal/model"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const callerContextKey = "caller_address"

// JWTAuth resolves the caller identity from a bearer token. Every mutating
// operation goes through this; the ledger never mutates anonymously.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || tokenString == "" {
				return model.ErrUnauthorized
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return model.ErrUnauthorized
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				return model.ErrUnauthorized
			}

			c.Set(callerContextKey, subject)
			return next(c)
		}
	}
}

// CallerAddress returns the authenticated caller set by JWTAuth.
func CallerAddress(c echo.Context) string {
	address, _ := c.Get(callerContextKey).(string)
	return address
}

// GenerateToken issues a token whose subject is the caller address.
func GenerateToken(secret, address string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": address,
	})
	return token.SignedString([]byte(secret))
}
