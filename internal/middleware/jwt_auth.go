package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/reelspro/backend/internal/models"
)

// JWTAuthMiddleware checks for a valid JWT and stores the claims in the
// request context under "user".
func JWTAuthMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			claims, err := parseBearerClaims(authHeader, jwtSecret)
			if err != nil {
				return err
			}

			c.Set("user", claims)

			return next(c)
		}
	}
}

// OptionalJWTAuthMiddleware stores the claims under "user" when a valid
// bearer token is present and lets the request through anonymously
// otherwise. For routes that are public but personalize their response
// for signed-in callers.
func OptionalJWTAuthMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader != "" {
				if claims, err := parseBearerClaims(authHeader, jwtSecret); err == nil {
					c.Set("user", claims)
				}
			}
			return next(c)
		}
	}
}

// parseBearerClaims validates an "Bearer <token>" header and returns the
// embedded claims, or an *echo.HTTPError describing the rejection.
func parseBearerClaims(authHeader, jwtSecret string) (*models.JwtCustomClaims, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}
	tokenString := parts[1]

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})

	if err != nil {
		if err == jwt.ErrSignatureInvalid {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token signature")
		}
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	if !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	return claims, nil
}
