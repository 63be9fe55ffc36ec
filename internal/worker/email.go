package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/oksasatya/dream-journal-api/pkg/mailer"
	mailtpl "github.com/oksasatya/dream-journal-api/pkg/mailer/templates"
)

// EmailHandler renders queued EmailJobs and sends them.
func EmailHandler(sender mailer.Sender, defaults mailtpl.Defaults) Handler {
	return func(ctx context.Context, body []byte) error {
		var job mailer.EmailJob
		if err := json.Unmarshal(body, &job); err != nil {
			return fmt.Errorf("%w: bad message: %v", ErrPermanent, err)
		}
		job.To = strings.TrimSpace(job.To)
		if job.To == "" {
			return fmt.Errorf("%w: missing recipient", ErrPermanent)
		}

		subject, text, html := job.Subject, job.Text, job.HTML
		if job.Template != "" {
			data := mailtpl.Build(job.Data, job.To, defaults, time.Now())
			s, t, h, err := mailtpl.Render(job.Template, data)
			if err != nil {
				return fmt.Errorf("%w: render %s: %v", ErrPermanent, job.Template, err)
			}
			subject, text, html = s, t, h
		}
		if subject == "" {
			return fmt.Errorf("%w: empty subject", ErrPermanent)
		}

		c, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		return sender.Send(c, job.To, subject, text, html)
	}
}
