package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-agenda/internal/application"
	"github.com/oksasatya/go-agenda/internal/domain/entity"
	"github.com/oksasatya/go-agenda/pkg/helpers"
)

const (
	LoginPath    = "/login/"
	HomePath     = "/"
	ContactsPath = "/contacts/"
)

// Gate resolves the session cookie of a request. Protected handlers call
// RequireSession first and stop when it reports false.
type Gate struct {
	Auth    *application.AuthService
	Cookies *helpers.Manager
}

func NewGate(auth *application.AuthService, cookies *helpers.Manager) *Gate {
	return &Gate{Auth: auth, Cookies: cookies}
}

// CurrentSession returns the live session of the request, or nil.
// A cookie that no longer maps to a session is cleared.
func (g *Gate) CurrentSession(c *gin.Context) *entity.Session {
	token, err := c.Cookie(helpers.SessionCookieName)
	if err != nil || token == "" {
		return nil
	}
	sess, err := g.Auth.Resolve(c.Request.Context(), token)
	if err != nil {
		g.Cookies.Clear(c)
		return nil
	}
	return sess
}

// RequireSession returns the session or redirects to the login page.
func (g *Gate) RequireSession(c *gin.Context) (*entity.Session, bool) {
	sess := g.CurrentSession(c)
	if sess == nil {
		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
		return nil, false
	}
	return sess, true
}
