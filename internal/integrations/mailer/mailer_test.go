package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func TestMailer_SendEmail(t *testing.T) {
	dialer := &fakeDialer{}
	m := NewWithDialer(dialer, "shop@example.com")

	err := m.SendEmail(context.Background(), "taro@example.com", "Reservation confirmed", "See you tomorrow")
	require.NoError(t, err)
	require.Len(t, dialer.sent, 1)

	msg := dialer.sent[0]
	assert.Equal(t, []string{"shop@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"taro@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Reservation confirmed"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "See you tomorrow")
}

func TestMailer_Errors(t *testing.T) {
	m := NewWithDialer(&fakeDialer{err: errors.New("connection refused")}, "shop@example.com")

	assert.ErrorIs(t, m.SendEmail(context.Background(), "", "s", "b"), ErrNoRecipient)
	assert.ErrorIs(t, m.SendEmail(context.Background(), "a@example.com", "s", "b"), ErrSend)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.SendEmail(ctx, "a@example.com", "s", "b"), context.Canceled)
}
