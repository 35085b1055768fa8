package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/go-employee-directory/pkg/mailer/templates"
)

// ErrBadJob marks a job that can never be delivered and should be dropped.
var ErrBadJob = errors.New("bad email job")

// Sender delivers one rendered message; satisfied by *Mailgun.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Dispatcher renders queued jobs and hands them to a Sender.
type Dispatcher struct {
	Sender  Sender
	AppName string
}

// Handle decodes a raw queue message and delivers it. Errors wrapping
// ErrBadJob are permanent; anything else is worth a retry.
func (d *Dispatcher) Handle(ctx context.Context, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrBadJob, err)
	}
	return d.Deliver(ctx, job)
}

func (d *Dispatcher) Deliver(ctx context.Context, job EmailJob) error {
	if strings.TrimSpace(job.To) == "" {
		return fmt.Errorf("%w: missing recipient", ErrBadJob)
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		data := make(map[string]any, len(job.Data)+1)
		for k, v := range job.Data {
			data[k] = v
		}
		if _, ok := data["AppName"]; !ok && d.AppName != "" {
			data["AppName"] = d.AppName
		}
		s, t, h, err := templates.Render(job.Template, data)
		if err != nil {
			return fmt.Errorf("%w: render %s: %v", ErrBadJob, job.Template, err)
		}
		subject, text, html = s, t, h
	}
	if subject == "" || (text == "" && html == "") {
		return fmt.Errorf("%w: empty message", ErrBadJob)
	}

	if err := d.Sender.Send(ctx, job.To, subject, text, html); err != nil {
		return fmt.Errorf("send to %s: %w", job.To, err)
	}
	return nil
}
