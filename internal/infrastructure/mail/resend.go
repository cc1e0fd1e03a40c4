// Package mail sends transactional email through the Resend API.
package mail

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Config captures the settings for the mail service.
type Config struct {
	APIKey  string
	From    string
	BaseURL string
	Enabled bool
}

// Service sends confirmation emails. With Enabled=false it logs instead of
// sending, which keeps local development free of an API key.
type Service struct {
	cfg    Config
	client *resend.Client
	log    zerolog.Logger
}

func NewService(cfg Config, log zerolog.Logger) (*Service, error) {
	if cfg.Enabled {
		if _, err := mail.ParseAddress(cfg.From); err != nil {
			return nil, fmt.Errorf("invalid sender address: %w", err)
		}
	}

	var client *resend.Client
	if cfg.Enabled {
		client = resend.NewClient(cfg.APIKey)
	}

	return &Service{
		cfg:    cfg,
		client: client,
		log:    log.With().Str("component", "mail").Logger(),
	}, nil
}

// SendConfirmation sends the registration confirmation email carrying the
// token link.
func (s *Service) SendConfirmation(ctx context.Context, to, tokenValue string) error {
	if err := validateAddress(to); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}

	link := fmt.Sprintf("%s/public/users/confirm/%s", strings.TrimRight(s.cfg.BaseURL, "/"), tokenValue)

	if !s.cfg.Enabled {
		s.log.Info().Str("to", to).Str("link", link).Msg("mail disabled, skipping confirmation email")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.cfg.From,
		To:      []string{to},
		Subject: "Confirm your account",
		Html: fmt.Sprintf(
			`<p>Welcome! Click the link below to confirm your account.</p><p><a href="%s">Confirm my account</a></p>`,
			link,
		),
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend API error: %w", err)
	}

	s.log.Info().Str("email_id", sent.Id).Str("to", to).Msg("confirmation email sent")
	return nil
}

// validateAddress rejects malformed addresses and header injection attempts.
func validateAddress(address string) error {
	addr, err := mail.ParseAddress(address)
	if err != nil {
		return err
	}
	if strings.ContainsAny(addr.Address, "\r\n") {
		return fmt.Errorf("address contains newline characters")
	}
	return nil
}
