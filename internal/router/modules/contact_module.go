package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-agenda/internal/interface/http"
)

// ContactModule wires the contact pages. Every handler checks the session itself.
type ContactModule struct {
	Handler *handlers.ContactHandler
}

func NewContactModule(h *handlers.ContactHandler) *ContactModule {
	return &ContactModule{Handler: h}
}

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	contacts := rg.Group("/contacts")
	{
		contacts.GET("/", m.Handler.List)
		contacts.GET("/create/", m.Handler.CreateForm)
		contacts.POST("/create/", m.Handler.Create)
		contacts.GET("/search/", m.Handler.Search)
		contacts.GET("/:id/update/", m.Handler.UpdateForm)
		contacts.POST("/:id/update/", m.Handler.Update)
		contacts.GET("/:id/delete/", m.Handler.DeleteRedirect)
		contacts.POST("/:id/delete/", m.Handler.Delete)
	}
}
