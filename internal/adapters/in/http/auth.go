package http

import (
	"errors"
	"net/http"
	"strings"

	"fulfillment/internal/core/application/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

var errInvalidToken = errors.New("invalid bearer token")

// claims is the token body issued by the identity service: sub is the account id.
type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate resolves an optional "Authorization: Bearer" HS256 token into a Principal.
// Requests without the header pass through anonymously; a malformed or invalid token is
// rejected with 401.
func Authenticate(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") {
				return writeError(c, http.StatusUnauthorized, KindUnauthenticated, errInvalidToken.Error())
			}

			p, err := parseToken(strings.TrimSpace(token), secret)
			if err != nil {
				return writeError(c, http.StatusUnauthorized, KindUnauthenticated, errInvalidToken.Error())
			}

			c.Set(principalKey, p)
			return next(c)
		}
	}
}

func parseToken(token string, secret []byte) (*fulfillment.Principal, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, errInvalidToken
	}

	id, err := kernel.UUIDFromString(c.Subject)
	if err != nil {
		return nil, err
	}
	role, err := fulfillment.ParseRole(strings.ToLower(c.Role))
	if err != nil {
		return nil, err
	}

	return &fulfillment.Principal{ID: id, Role: role}, nil
}

// principalFrom returns nil for anonymous requests.
func principalFrom(c echo.Context) *fulfillment.Principal {
	p, _ := c.Get(principalKey).(*fulfillment.Principal)
	return p
}
