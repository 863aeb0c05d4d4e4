package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-agenda/internal/interface/http"
)

// AuthModule serves login, logout and the home page.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/login/", m.Handler.LoginForm)
	rg.POST("/login/", m.Handler.Login)
	rg.GET("/logout/", m.Handler.LogoutRedirect)
	rg.POST("/logout/", m.Handler.Logout)

	rg.GET("/", m.Handler.Home)
	rg.GET("/index/", m.Handler.Home)
}
