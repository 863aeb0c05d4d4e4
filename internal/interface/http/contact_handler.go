package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-agenda/internal/application"
	"github.com/oksasatya/go-agenda/internal/domain/entity"
	repo "github.com/oksasatya/go-agenda/internal/domain/repository"
	"github.com/oksasatya/go-agenda/internal/domain/rules"
	"github.com/oksasatya/go-agenda/internal/interface/http/views"
	"github.com/oksasatya/go-agenda/pkg/response"
	"github.com/oksasatya/go-agenda/pkg/validation"
)

type ContactHandler struct {
	Svc    *application.ContactService
	Gate   *Gate
	Logger *logrus.Logger
}

func NewContactHandler(svc *application.ContactService, gate *Gate, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{Svc: svc, Gate: gate, Logger: logger}
}

// Field rules live in rules.ValidateContactFields; binding only maps the form.
type contactRequest struct {
	FullName string `form:"nome_completo"`
	Phone    string `form:"telefone"`
	Email    string `form:"email"`
	Note     string `form:"observacao"`
}

func (r contactRequest) fields() application.ContactFields {
	return application.ContactFields{FullName: r.FullName, Phone: r.Phone, Email: r.Email, Note: r.Note}
}

func contactID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func isValidation(err error) bool {
	var verr *rules.ValidationError
	return errors.As(err, &verr)
}

func (h *ContactHandler) CreateForm(c *gin.Context) {
	sess, ok := h.Gate.RequireSession(c)
	if !ok {
		return
	}
	render(c, http.StatusOK, views.CreateContact, views.Page{Title: "Novo contato", Session: sess})
}

func (h *ContactHandler) Create(c *gin.Context) {
	sess, ok := h.Gate.RequireSession(c)
	if !ok {
		return
	}
	var req contactRequest
	if err := c.ShouldBind(&req); err != nil {
		render(c, http.StatusOK, views.CreateContact, views.Page{Title: "Novo contato", Session: sess, Form: req.fields(), Errors: validation.ToDetails(err)})
		return
	}
	created, err := h.Svc.Create(c.Request.Context(), req.fields())
	if err != nil {
		if isValidation(err) {
			render(c, http.StatusOK, views.CreateContact, views.Page{Title: "Novo contato", Session: sess, Form: req.fields(), Errors: validation.ToDetails(err)})
			return
		}
		serverError(c, h.Logger, err, sess, "create contact failed")
		return
	}
	h.Logger.WithFields(logrus.Fields{"contact_id": created.ID, "user_id": sess.UserID}).Info("contact created")
	c.Redirect(http.StatusFound, ContactsPath)
}

func (h *ContactHandler) List(c *gin.Context) {
	sess, ok := h.Gate.RequireSession(c)
	if !ok {
		return
	}
	contacts, err := h.Svc.List(c.Request.Context())
	if err != nil {
		serverError(c, h.Logger, err, sess, "list contacts failed")
		return
	}
	render(c, http.StatusOK, views.ListContacts, views.Page{Title: "Contatos", Session: sess, Contacts: contacts})
}

func (h *ContactHandler) UpdateForm(c *gin.Context) {
	sess, ok := h.Gate.RequireSession(c)
	if !ok {
		return
	}
	contact, ok := h.load(c, sess)
	if !ok {
		return
	}
	render(c, http.StatusOK, views.UpdateContact, views.Page{Title: "Editar contato", Session: sess, Contact: contact, Form: views.FormFrom(contact)})
}

func (h *ContactHandler) Update(c *gin.Context) {
	sess, ok := h.Gate.RequireSession(c)
	if !ok {
		return
	}
	id, ok := contactID(c)
	if !ok {
		notFound(c, sess)
		return
	}
	var req contactRequest
	if err := c.ShouldBind(&req); err != nil {
		current, ok := h.load(c, sess)
		if !ok {
			return
		}
		render(c, http.StatusOK, views.UpdateContact, views.Page{Title: "Editar contato", Session: sess, Contact: current, Form: req.fields(), Errors: validation.ToDetails(err)})
		return
	}
	current, err := h.Svc.Update(c.Request.Context(), id, req.fields())
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, ContactsPath)
	case errors.Is(err, repo.ErrNotFound):
		notFound(c, sess)
	case isValidation(err):
		render(c, http.StatusOK, views.UpdateContact, views.Page{Title: "Editar contato", Session: sess, Contact: current, Form: req.fields(), Errors: validation.ToDetails(err)})
	default:
		serverError(c, h.Logger, err, sess, "update contact failed")
	}
}

func (h *ContactHandler) Delete(c *gin.Context) {
	sess, ok := h.Gate.RequireSession(c)
	if !ok {
		return
	}
	id, ok := contactID(c)
	if !ok {
		notFound(c, sess)
		return
	}
	err := h.Svc.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		h.Logger.WithFields(logrus.Fields{"contact_id": id, "user_id": sess.UserID}).Info("contact deleted")
		c.Redirect(http.StatusFound, ContactsPath)
	case errors.Is(err, repo.ErrNotFound):
		notFound(c, sess)
	default:
		serverError(c, h.Logger, err, sess, "delete contact failed")
	}
}

// DeleteRedirect answers a GET on the delete route without deleting anything.
func (h *ContactHandler) DeleteRedirect(c *gin.Context) {
	sess, ok := h.Gate.RequireSession(c)
	if !ok {
		return
	}
	if _, ok := h.load(c, sess); !ok {
		return
	}
	c.Redirect(http.StatusFound, ContactsPath)
}

func (h *ContactHandler) Search(c *gin.Context) {
	if _, ok := h.Gate.RequireSession(c); !ok {
		return
	}
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	contacts, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("search contacts failed")
		response.Error[any](c, http.StatusInternalServerError, "falha na busca", nil)
		return
	}
	response.Success(c, http.StatusOK, contacts, "ok", map[string]any{"q": q, "count": len(contacts)})
}

// load fetches the contact named by the :id parameter, answering 404 or 500 itself.
func (h *ContactHandler) load(c *gin.Context, sess *entity.Session) (*entity.Contact, bool) {
	id, ok := contactID(c)
	if !ok {
		notFound(c, sess)
		return nil, false
	}
	contact, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			notFound(c, sess)
		} else {
			serverError(c, h.Logger, err, sess, "load contact failed")
		}
		return nil, false
	}
	return contact, true
}
