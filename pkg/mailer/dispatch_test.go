package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	to, subject, text, html string
}

type fakeSender struct {
	sent []sentMessage
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMessage{to, subject, text, html})
	return nil
}

func TestDispatcher_HandleWelcome(t *testing.T) {
	s := &fakeSender{}
	d := &Dispatcher{Sender: s, AppName: "Acme"}

	body := []byte(`{"to":"ana@x.com","template":"welcome","data":{"Username":"ana","Email":"ana@x.com"}}`)
	require.NoError(t, d.Handle(context.Background(), body))

	require.Len(t, s.sent, 1)
	assert.Equal(t, "ana@x.com", s.sent[0].to)
	assert.Equal(t, "Welcome to Acme, ana", s.sent[0].subject)
	assert.NotEmpty(t, s.sent[0].html)
}

func TestDispatcher_LiteralMessage(t *testing.T) {
	s := &fakeSender{}
	d := &Dispatcher{Sender: s}

	require.NoError(t, d.Deliver(context.Background(), EmailJob{To: "a@x.com", Subject: "hi", Text: "body"}))
	assert.Equal(t, "body", s.sent[0].text)
}

func TestDispatcher_PermanentFailures(t *testing.T) {
	d := &Dispatcher{Sender: &fakeSender{}}
	ctx := context.Background()

	assert.ErrorIs(t, d.Handle(ctx, []byte(`not json`)), ErrBadJob)
	assert.ErrorIs(t, d.Deliver(ctx, EmailJob{Subject: "x", Text: "y"}), ErrBadJob)
	assert.ErrorIs(t, d.Deliver(ctx, EmailJob{To: "a@x.com", Template: "missing"}), ErrBadJob)
	assert.ErrorIs(t, d.Deliver(ctx, EmailJob{To: "a@x.com"}), ErrBadJob)
}

func TestDispatcher_SendFailureIsRetryable(t *testing.T) {
	d := &Dispatcher{Sender: &fakeSender{err: errors.New("503")}}
	err := d.Deliver(context.Background(), EmailJob{To: "a@x.com", Subject: "x", Text: "y"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadJob)
}
