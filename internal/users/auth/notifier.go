// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"log/slog"
	"time"
)

// # Verification Mail

// VerificationMail is the job handed to a [VerificationNotifier] after registration.
type VerificationMail struct {
	AccountID string    `json:"account_id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Link      string    `json:"link"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VerificationNotifier delivers verification links to new accounts.
type VerificationNotifier interface {
	SendVerification(context context.Context, mail VerificationMail) error
}

// LogNotifier writes verification mails to the structured log instead of sending them.
//
// Used in development and whenever no Redis outbox is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a [LogNotifier].
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// SendVerification logs the mail at info level.
func (notifier *LogNotifier) SendVerification(context context.Context, mail VerificationMail) error {
	notifier.logger.InfoContext(context, "auth_verification_mail",
		slog.String("account_id", mail.AccountID),
		slog.String("email", mail.Email),
		slog.String("link", mail.Link),
		slog.Time("expires_at", mail.ExpiresAt),
	)
	return nil
}
