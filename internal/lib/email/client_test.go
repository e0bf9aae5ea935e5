package email

import (
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var welcomeData = map[string]string{"UserName": "Devin Sanders"}

type fakeSender struct {
	sent *resend.SendEmailRequest
	err  error
}

func (s *fakeSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	s.sent = params
	if s.err != nil {
		return nil, s.err
	}
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func TestRenderWelcome(t *testing.T) {
	body, err := Render(TemplateWelcome, welcomeData)
	require.NoError(t, err)
	assert.Contains(t, body, welcomeData["UserName"])
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render(Template("missing"), nil)
	assert.Error(t, err)
}

func TestSendWelcomeEmail(t *testing.T) {
	sender := &fakeSender{}
	logger := zerolog.Nop()
	client := NewClientWithSender(sender, "onboarding@resend.dev", &logger)

	require.NoError(t, client.SendWelcomeEmail("ann@x.com", "Ann"))
	require.NotNil(t, sender.sent)
	assert.Equal(t, "LightBnB <onboarding@resend.dev>", sender.sent.From)
	assert.Equal(t, []string{"ann@x.com"}, sender.sent.To)
	assert.Equal(t, "Welcome to LightBnB!", sender.sent.Subject)
	assert.Contains(t, sender.sent.Html, "Ann")
}

func TestSendEmailProviderError(t *testing.T) {
	sender := &fakeSender{err: errors.New("rate limited")}
	logger := zerolog.Nop()
	client := NewClientWithSender(sender, "onboarding@resend.dev", &logger)

	err := client.SendWelcomeEmail("ann@x.com", "Ann")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send email")
}
