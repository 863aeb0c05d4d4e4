package main

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-agenda/pkg/helpers"
	"github.com/oksasatya/go-agenda/pkg/mailer"
	mailtpl "github.com/oksasatya/go-agenda/pkg/mailer/templates"
)

type outcome int

const (
	outcomeAck outcome = iota
	outcomeRetry
	outcomeDrop
)

type sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

type worker struct {
	Sender sender
	Logger *logrus.Logger
}

var errNoRecipient = errors.New("email job has no recipient")

// render resolves the final subject and bodies of a job.
func render(job *mailer.EmailJob) (subject, text, html string, err error) {
	if job.To == "" {
		return "", "", "", errNoRecipient
	}
	helpers.EnsureRecipientAndEmail(job)
	if job.Template == "" {
		return job.Subject, job.Text, job.HTML, nil
	}
	return mailtpl.Render(job.Template, job.Data)
}

// handle processes one queue message. Malformed jobs are dropped, send failures retried.
func (w *worker) handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.Logger.WithError(err).Warn("bad message")
		return outcomeDrop
	}

	subject, text, html, err := render(&job)
	if err != nil {
		w.Logger.WithError(err).WithField("template", job.Template).Error("render failed")
		return outcomeDrop
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		w.Logger.WithError(err).WithField("to", job.To).Warn("send failed")
		return outcomeRetry
	}
	w.Logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
	return outcomeAck
}
