package notify

import (
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestNew_NoopWithoutToken(t *testing.T) {
	n, err := New("", 0)
	require.NoError(t, err)
	assert.IsType(t, Noop{}, n)

	n.Notify("ignored")
}

func TestTelegram_Notify(t *testing.T) {
	s := &fakeSender{}
	n := &Telegram{bot: s, chatID: 42}

	n.Notify("Payment proof submitted for FITCAMP-001")

	require.Len(t, s.sent, 1)
	msg, ok := s.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "Payment proof submitted for FITCAMP-001", msg.Text)
}

func TestTelegram_NotifySwallowsErrors(t *testing.T) {
	n := &Telegram{bot: &fakeSender{err: errors.New("blocked")}, chatID: 1}
	assert.NotPanics(t, func() { n.Notify("x") })
}
