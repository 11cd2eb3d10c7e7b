package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"mealroute/internal/pkg/errs"
)

const tokenTTL = 12 * time.Hour

// driverClaims carries the authenticated driver's identity in the session
// token. The zone is included so route fetches can default to the driver's
// own territory without a roster lookup.
type driverClaims struct {
	DriverName string `json:"driverName"`
	Zone       string `json:"zone"`
	jwt.RegisteredClaims
}

func issueToken(secret, driverName, zone string, now time.Time) (string, error) {
	claims := driverClaims{
		DriverName: driverName,
		Zone:       zone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   driverName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseToken(secret, tokenStr string) (*driverClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &driverClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.NewValueIsInvalidError("signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*driverClaims)
	if !ok || !token.Valid {
		return nil, errs.NewValueIsInvalidError("token")
	}

	return claims, nil
}

const claimsContextKey = "driverClaims"

// driverAuth is the echo middleware gating driver endpoints. It expects a
// bearer token issued by the login endpoint and stores the parsed claims on
// the request context for handlers to read.
func driverAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenStr == "" {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Missing bearer token",
				})
			}

			claims, err := parseToken(secret, tokenStr)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Invalid or expired token",
				})
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

func claimsFrom(c echo.Context) *driverClaims {
	claims, _ := c.Get(claimsContextKey).(*driverClaims)
	return claims
}
