package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-agenda/internal/domain/entity"
	repo "github.com/oksasatya/go-agenda/internal/domain/repository"
	"github.com/oksasatya/go-agenda/internal/domain/rules"
	"github.com/oksasatya/go-agenda/pkg/helpers"
	"github.com/oksasatya/go-agenda/pkg/mailer"
	tpl "github.com/oksasatya/go-agenda/pkg/mailer/templates"
)

// ErrNoSession is returned by Resolve when the request carries no live session.
var ErrNoSession = errors.New("no active session")

// JobPublisher enqueues background jobs; *helpers.RabbitQueue satisfies it.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type AuthService struct {
	Users      repo.UserRepository
	Sessions   repo.SessionRepository
	JWT        *helpers.JWTManager
	Logger     *logrus.Logger
	Pub        JobPublisher
	AppName    string
	NotifyMail bool
}

func NewAuthService(users repo.UserRepository, sessions repo.SessionRepository, jwt *helpers.JWTManager, logger *logrus.Logger, pub JobPublisher, appName string, notifyMail bool) *AuthService {
	return &AuthService{
		Users:      users,
		Sessions:   sessions,
		JWT:        jwt,
		Logger:     logger,
		Pub:        pub,
		AppName:    appName,
		NotifyMail: notifyMail,
	}
}

// LoginMeta describes the client performing the login.
type LoginMeta struct {
	IP        string
	UserAgent string
}

// ValidateCredentials resolves the user by email, then checks the password.
// It fails with rules.ErrUserNotFound or rules.ErrInvalidCredential.
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if err := rules.CheckCredentials(u, password).Err(); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the institutional domain and the credentials, then opens a session.
// The returned token is what the browser presents on later requests.
func (s *AuthService) Login(ctx context.Context, email, password string, meta LoginMeta) (*entity.Session, string, time.Time, error) {
	if err := rules.ValidateInstitutionalEmail(email); err != nil {
		return nil, "", time.Time{}, err
	}
	u, err := s.ValidateCredentials(ctx, email, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	sid := uuid.NewString()
	token, exp, err := s.JWT.GenerateSessionToken(u.ID, sid)
	if err != nil {
		s.logError(err, logrus.Fields{"user_id": u.ID}, "generate session token failed")
		return nil, "", time.Time{}, err
	}
	sess := &entity.Session{
		ID:        sid,
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: exp.UTC(),
	}
	if err := s.Sessions.Create(ctx, sess, s.JWT.TTL); err != nil {
		s.logError(err, logrus.Fields{"user_id": u.ID}, "store session failed")
		return nil, "", time.Time{}, err
	}

	s.notifyLogin(ctx, u, meta)
	return sess, token, exp, nil
}

// Resolve maps a session token back to its live session.
// The session must still belong to an existing user.
func (s *AuthService) Resolve(ctx context.Context, token string) (*entity.Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	claims, err := s.JWT.ParseSessionToken(token)
	if err != nil {
		return nil, ErrNoSession
	}
	sess, err := s.Sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			s.logError(err, logrus.Fields{"session_id": claims.SessionID}, "load session failed")
		}
		return nil, ErrNoSession
	}
	if sess.UserID != claims.UserID {
		return nil, ErrNoSession
	}
	if _, err := s.Users.GetByID(ctx, sess.UserID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// the account was removed while the session was alive
			_ = s.Sessions.Delete(ctx, sess.ID)
		} else {
			s.logError(err, logrus.Fields{"user_id": sess.UserID}, "load session user failed")
		}
		return nil, ErrNoSession
	}
	return sess, nil
}

// Logout terminates sess. A nil session is already logged out.
func (s *AuthService) Logout(ctx context.Context, sess *entity.Session) error {
	if sess == nil {
		return nil
	}
	if err := s.Sessions.Delete(ctx, sess.ID); err != nil {
		s.logError(err, logrus.Fields{"session_id": sess.ID}, "delete session failed")
		return err
	}
	return nil
}

func (s *AuthService) notifyLogin(ctx context.Context, u *entity.User, meta LoginMeta) {
	if s.Pub == nil || !s.NotifyMail {
		return
	}
	data := tpl.NewLoginNotificationData(s.AppName, u.Username, u.Email,
		tpl.WithTime(time.Now()),
		tpl.WithIP(meta.IP),
		tpl.WithUserAgent(meta.UserAgent),
	)
	job := mailer.EmailJob{To: u.Email, Template: tpl.LoginNotification, Data: data}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.logWarn(err, logrus.Fields{"user_id": u.ID}, "enqueue login notification failed")
	}
}

func (s *AuthService) logError(err error, fields logrus.Fields, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithFields(fields).Error(msg)
	}
}

func (s *AuthService) logWarn(err error, fields logrus.Fields, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithFields(fields).Warn(msg)
	}
}
