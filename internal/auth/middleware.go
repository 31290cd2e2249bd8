package auth

import (
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"taskhub/internal/errors"
)

// loginPath is where unauthenticated page requests are redirected.
const loginPath = "/login"

// Gate classifies every inbound request as public or protected and resolves
// the session for protected ones. Routes not listed as public are protected;
// an unlisted route failing closed is the safer default.
type Gate struct {
	tokens  *JWTService
	public  []string
	require echo.MiddlewareFunc
}

// NewGate builds a gate over the given token service. publicPaths are exact
// request paths, or prefixes when they end in "/*".
func NewGate(tokens *JWTService, publicPaths ...string) *Gate {
	g := &Gate{tokens: tokens, public: publicPaths}
	g.require = echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + SessionCookieName,
		ContextKey:  sessionContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return tokens.ParseToken(token)
		},
		ErrorHandler: g.unauthenticated,
	})
	return g
}

// Middleware returns the echo middleware enforcing the gate. It runs before
// handler logic, mutates nothing, and skips session resolution entirely on
// public routes.
func (g *Gate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if g.isPublic(c.Request().URL.Path) {
				return next(c)
			}
			return g.require(next)(c)
		}
	}
}

func (g *Gate) isPublic(path string) bool {
	for _, p := range g.public {
		if prefix, ok := strings.CutSuffix(p, "/*"); ok {
			if strings.HasPrefix(path, prefix+"/") || path == prefix {
				return true
			}
			continue
		}
		if path == p {
			return true
		}
	}
	return false
}

// unauthenticated answers any session failure. API routes get a uniform 401
// with no reason detail; page routes are redirected to the login page.
func (g *Gate) unauthenticated(c echo.Context, err error) error {
	if !strings.HasPrefix(c.Request().URL.Path, "/api/") {
		return c.Redirect(http.StatusSeeOther, loginPath)
	}
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: "unauthorized",
		Code:  "UNAUTHORIZED",
	})
}
