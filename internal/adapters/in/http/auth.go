package http

import (
	"errors"
	"net/http"
	"strings"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const principalContextKey = "principal"

// Claims are the JWT claims the marketplace issues at login: the party's
// identifier in the subject and its marketplace role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the authenticated party extracted from a verified token.
type Principal struct {
	ID   kernel.UUID
	Role string
}

// IsBuyer reports whether the principal acts as a buyer (vendor).
func (p Principal) IsBuyer() bool {
	return p.Role == "buyer"
}

// IsSeller reports whether the principal acts as a seller (supplier).
func (p Principal) IsSeller() bool {
	return p.Role == "seller"
}

// TokenVerifier validates HMAC-signed bearer tokens.
type TokenVerifier struct {
	secretKey []byte
}

// NewTokenVerifier creates a verifier for tokens signed with the given secret.
func NewTokenVerifier(secretKey string) *TokenVerifier {
	return &TokenVerifier{secretKey: []byte(secretKey)}
}

// Verify parses and validates a token string, returning the principal it
// identifies.
func (v *TokenVerifier) Verify(tokenString string) (Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, ErrExpiredToken
		}
		return Principal{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	if claims.Role != "buyer" && claims.Role != "seller" {
		return Principal{}, ErrInvalidToken
	}

	return Principal{ID: id, Role: claims.Role}, nil
}

// Middleware returns an echo middleware that rejects requests without a valid
// bearer token and stores the principal in the request context.
func (v *TokenVerifier) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Missing bearer token",
				})
			}

			principal, err := v.Verify(tokenString)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: err.Error(),
				})
			}

			ctx.Set(principalContextKey, principal)
			return next(ctx)
		}
	}
}

// principalFrom extracts the authenticated principal stored by the middleware.
func principalFrom(ctx echo.Context) (Principal, bool) {
	principal, ok := ctx.Get(principalContextKey).(Principal)
	return principal, ok
}
