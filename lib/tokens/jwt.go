package tokens

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

type jwtCustomClaims struct {
	ID        int64 `json:"id"`
	CompanyID int64 `json:"company_id"`

	jwt.StandardClaims
}

// GenerateAccessToken mints an access token for the given user and tenant.
// In production tokens come from the identity service sharing the secret;
// this is used by tests and the admin tooling.
func GenerateAccessToken(secret []byte, expiryInSeconds int, userID, companyID int64) (string, error) {
	claims := &jwtCustomClaims{
		ID:        userID,
		CompanyID: companyID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Duration(expiryInSeconds) * time.Second).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Middleware validates the bearer token and injects UserID and CompanyID
// into the echo context for the controllers.
func Middleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.NoContent(http.StatusUnauthorized)
			}
			claims := &jwtCustomClaims{}
			token, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return c.NoContent(http.StatusUnauthorized)
			}

			c.Set("UserID", claims.ID)
			c.Set("CompanyID", claims.CompanyID)

			return next(c)
		}
	}
}
