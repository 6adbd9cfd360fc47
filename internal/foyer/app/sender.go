package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// logSender writes invitation links to the service log instead of sending
// mail. Deployments with real delivery replace this with an SMTP or
// provider-backed implementation of service.InviteSender.
type logSender struct {
	logger  *slog.Logger
	baseURL string
}

func (s *logSender) SendInvitation(ctx context.Context, email, token string, expiresAt time.Time) error {
	link := fmt.Sprintf("%s/signup?email=%s&token=%s",
		s.baseURL,
		url.QueryEscape(email),
		url.QueryEscape(token),
	)

	s.logger.Info("invitation link ready for delivery",
		"email", email,
		"link", link,
		"expires_at", expiresAt.Format(time.RFC3339),
	)
	return nil
}
