package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dispatch/entities"
	"dispatch/pkg/identity"
)

const (
	MsgUnauthorized = "認証が必要です"
	MsgForbidden    = "管理者権限が必要です"

	decisionKey = "auth.decision"
)

// Decision is the outcome of the role gate for one request.
type Decision struct {
	Authenticated bool
	Admin         bool
	UserID        string
	FullName      string
}

type ProfileLookup interface {
	FindByID(ctx context.Context, id string) (*entities.User, error)
}

type Gate struct {
	idp      identity.Provider
	profiles ProfileLookup
	log      *zap.Logger
}

func NewGate(idp identity.Provider, profiles ProfileLookup, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{idp: idp, profiles: profiles, log: log.Named("gate")}
}

// BearerToken extracts the token; the literal strings "null" and
// "undefined" that browsers send for a missing session count as absent.
func BearerToken(header string) string {
	tok := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(header), "Bearer "))
	switch tok {
	case "", "null", "undefined", "Bearer":
		return ""
	}
	return tok
}

// Evaluate never fails: an unknown token is anonymous and a missing
// profile row is authenticated without admin rights.
func (g *Gate) Evaluate(ctx context.Context, authHeader string) Decision {
	tok := BearerToken(authHeader)
	if tok == "" {
		return Decision{}
	}
	id, err := g.idp.Resolve(ctx, tok)
	if err != nil {
		g.log.Debug("token rejected", zap.Error(err))
		return Decision{}
	}
	d := Decision{Authenticated: true, UserID: id.ID}
	u, err := g.profiles.FindByID(ctx, id.ID)
	if err != nil || u == nil {
		return d
	}
	d.Admin = u.IsAdmin()
	d.FullName = u.FullName
	return d
}

// Attach stores the decision on the context without rejecting anything.
func (g *Gate) Attach() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := g.Evaluate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
			c.Set(decisionKey, d)
			if d.Authenticated {
				c.Set("uid", d.UserID)
			}
			return next(c)
		}
	}
}

func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !DecisionFrom(c).Authenticated {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": MsgUnauthorized})
			}
			return next(c)
		}
	}
}

// RequireAdmin answers 403 to everyone who is not an admin, anonymous
// callers included, before the handler does any work.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !DecisionFrom(c).Admin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": MsgForbidden})
			}
			return next(c)
		}
	}
}

func DecisionFrom(c echo.Context) Decision {
	d, _ := c.Get(decisionKey).(Decision)
	return d
}
