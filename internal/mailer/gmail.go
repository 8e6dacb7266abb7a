// Package mailer sends composed outreach emails through the user's Gmail
// account. Credentials live in a Session supplied by the caller per send;
// the package holds no token state of its own, so lifetime and refresh
// policy stay with the caller.
package mailer

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Session carries the caller's Gmail OAuth credentials for one or more
// sends.
type Session struct {
	source oauth2.TokenSource
}

// NewSession wraps a bearer access token obtained by the caller.
func NewSession(accessToken string) *Session {
	return &Session{source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})}
}

// NewSessionFromTokenSource lets callers supply a refreshing token source.
func NewSessionFromTokenSource(source oauth2.TokenSource) *Session {
	return &Session{source: source}
}

// Message is a fully composed email ready to send.
type Message struct {
	To         string
	Subject    string
	Body       string
	SenderName string
}

// Sender delivers a composed message on behalf of a session.
type Sender interface {
	Send(ctx context.Context, session *Session, msg Message) error
}

// GmailSender sends via the Gmail API as the authenticated user.
type GmailSender struct{}

// NewGmailSender constructs a sender.
func NewGmailSender() *GmailSender {
	return &GmailSender{}
}

// Send builds an RFC 822 message and submits it through the Gmail API.
func (s *GmailSender) Send(ctx context.Context, session *Session, msg Message) error {
	if session == nil {
		return fmt.Errorf("mail session is required")
	}
	if msg.To == "" {
		return fmt.Errorf("recipient is required")
	}

	svc, err := gmail.NewService(ctx, option.WithTokenSource(session.source))
	if err != nil {
		return fmt.Errorf("create gmail service: %w", err)
	}

	raw := buildRawMessage(msg)
	_, err = svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("send gmail message: %w", err)
	}
	return nil
}

// buildRawMessage renders the base64url-encoded RFC 822 payload the Gmail
// API expects. The From address is the authenticated user; only the
// display name is set explicitly.
func buildRawMessage(msg Message) string {
	var b strings.Builder
	if msg.SenderName != "" {
		fmt.Fprintf(&b, "From: %s <me>\r\n", msg.SenderName)
	}
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}

var _ Sender = (*GmailSender)(nil)
