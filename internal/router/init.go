package router

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-agenda/internal/application"
	"github.com/oksasatya/go-agenda/internal/container"
	repo "github.com/oksasatya/go-agenda/internal/domain/repository"
	pginfra "github.com/oksasatya/go-agenda/internal/infrastructure/postgres"
	redisinfra "github.com/oksasatya/go-agenda/internal/infrastructure/redis"
	"github.com/oksasatya/go-agenda/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-agenda/internal/interface/http"
	"github.com/oksasatya/go-agenda/internal/router/modules"
	"github.com/oksasatya/go-agenda/pkg/helpers"
)

// Deps is everything the HTTP modules need. Index and Pub may be nil.
type Deps struct {
	Users    repo.UserRepository
	Contacts repo.ContactRepository
	Sessions repo.SessionRepository
	Index    repo.ContactIndex
	Pub      application.JobPublisher

	JWT     *helpers.JWTManager
	Cookies *helpers.Manager
	Logger  *logrus.Logger

	AppName      string
	NotifyMail   bool
	DebugMetrics bool
}

func depsFromContainer() Deps {
	cfg := container.GetConfig()
	pool := container.GetPGPool()

	d := Deps{
		Users:        pginfra.NewUserRepository(pool),
		Contacts:     pginfra.NewContactRepository(pool),
		Sessions:     redisinfra.NewSessionRepository(container.GetRedis()),
		JWT:          container.GetJWT(),
		Cookies:      helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
		Logger:       container.GetLogger(),
		AppName:      cfg.AppName,
		NotifyMail:   cfg.MailSendEnabled,
		DebugMetrics: cfg.DebugMetricsEnabled,
	}
	// interface fields stay nil unless the client exists
	if es := container.GetES(); es != nil {
		d.Index = search.NewContactIndex(es, cfg.ESContactsIndex)
	}
	if pub := container.GetRabbitPub(); pub != nil {
		d.Pub = pub
	}
	return d
}

// InitModules wires all application modules from the container singletons.
// Call once during start-up, before RegisterAll.
func InitModules(r *Registry) {
	Mount(r, depsFromContainer())
}

// Mount builds services and handlers from d and adds their modules to r.
func Mount(r *Registry, d Deps) {
	authSvc := application.NewAuthService(d.Users, d.Sessions, d.JWT, d.Logger, d.Pub, d.AppName, d.NotifyMail)
	contactSvc := application.NewContactService(d.Contacts, d.Index, d.Logger)

	gate := handlers.NewGate(authSvc, d.Cookies)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, gate, d.Cookies, d.Logger)))
	r.Add(modules.NewContactModule(handlers.NewContactHandler(contactSvc, gate, d.Logger)))
	if d.DebugMetrics {
		r.Add(modules.NewDebugModule())
	}
	r.NoRoute(handlers.NotFoundPage)
}
