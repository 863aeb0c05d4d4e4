package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-agenda/internal/application"
	"github.com/oksasatya/go-agenda/internal/domain/rules"
	"github.com/oksasatya/go-agenda/internal/interface/http/views"
	"github.com/oksasatya/go-agenda/pkg/helpers"
	"github.com/oksasatya/go-agenda/pkg/validation"
)

type AuthHandler struct {
	Auth    *application.AuthService
	Gate    *Gate
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, gate *Gate, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Gate: gate, Cookies: cookies, Logger: logger}
}

type loginRequest struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

func isLoginError(err error) bool {
	return errors.Is(err, rules.ErrDomain) ||
		errors.Is(err, rules.ErrUserNotFound) ||
		errors.Is(err, rules.ErrInvalidCredential)
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	if h.Gate.CurrentSession(c) != nil {
		c.Redirect(http.StatusFound, HomePath)
		return
	}
	render(c, http.StatusOK, views.Login, views.Page{Title: "Entrar"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	if h.Gate.CurrentSession(c) != nil {
		c.Redirect(http.StatusFound, HomePath)
		return
	}
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		render(c, http.StatusOK, views.Login, views.Page{Title: "Entrar", Email: req.Email, Errors: validation.ToDetails(err)})
		return
	}

	_, token, exp, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password, application.LoginMeta{
		IP:        clientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		if isLoginError(err) {
			render(c, http.StatusOK, views.Login, views.Page{Title: "Entrar", Email: req.Email, Errors: validation.ToDetails(err)})
			return
		}
		serverError(c, h.Logger, err, nil, "login failed")
		return
	}
	h.Cookies.SetSession(c, token, exp)
	c.Redirect(http.StatusFound, HomePath)
}

// Logout terminates the session on POST. GET only goes back home.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Auth.Logout(c.Request.Context(), h.Gate.CurrentSession(c)); err != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Warn("logout failed")
	}
	h.Cookies.Clear(c)
	render(c, http.StatusOK, views.Logout, views.Page{Title: "Sair"})
}

func (h *AuthHandler) LogoutRedirect(c *gin.Context) {
	c.Redirect(http.StatusFound, HomePath)
}

func (h *AuthHandler) Home(c *gin.Context) {
	sess, ok := h.Gate.RequireSession(c)
	if !ok {
		return
	}
	render(c, http.StatusOK, views.Index, views.Page{Title: "Início", Session: sess})
}
