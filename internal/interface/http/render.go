package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-agenda/internal/domain/entity"
	"github.com/oksasatya/go-agenda/internal/interface/http/views"
)

func render(c *gin.Context, status int, name string, p views.Page) {
	p.RequestID = c.GetString("request_id")
	c.HTML(status, name, p)
}

func notFound(c *gin.Context, sess *entity.Session) {
	render(c, http.StatusNotFound, views.NotFound, views.Page{Title: "Não encontrado", Session: sess})
	c.Abort()
}

func serverError(c *gin.Context, logger *logrus.Logger, err error, sess *entity.Session, msg string) {
	if logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
		}).Error(msg)
	}
	render(c, http.StatusInternalServerError, views.Error, views.Page{Title: "Erro", Session: sess})
	c.Abort()
}

// NotFoundPage is the fallback for unknown routes.
func NotFoundPage(c *gin.Context) {
	notFound(c, nil)
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}
