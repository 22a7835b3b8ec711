package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alumni-network/pkg/helpers"
	"github.com/oksasatya/alumni-network/pkg/mailer"
	mailtpl "github.com/oksasatya/alumni-network/pkg/mailer/templates"
)

// dispatchMail hands a job to the email queue, falling back to a direct
// Mailgun send when no publisher is up or the publish fails. Delivery is
// best effort either way.
func dispatchMail(ctx context.Context, pub *helpers.RabbitPublisher, mail mailer.Sender, logger *logrus.Logger, job mailer.EmailJob) {
	if pub != nil {
		err := pub.PublishJSON(ctx, job)
		if err == nil {
			return
		}
		if logger != nil {
			logger.WithError(err).Warn("email job publish failed, trying direct send")
		}
	}
	if mail == nil {
		return
	}

	subject, html := job.Subject, job.HTML
	if job.Template != "" {
		s, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			if logger != nil {
				logger.WithError(err).WithField("template", job.Template).Warn("email template render failed")
			}
			return
		}
		subject, html = s, h
	}
	if err := mail.Send(ctx, job.To, subject, job.Text, html); err != nil && logger != nil {
		logger.WithError(err).WithField("to", job.To).Warn("direct email send failed")
	}
}
