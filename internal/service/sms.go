package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sakanapp/sakan/internal/syncq"
)

// SMSMessage is the payload posted to the proxy's /api/sms endpoint.
type SMSMessage struct {
	To       string `json:"to"`
	Message  string `json:"message"`
	Provider string `json:"provider,omitempty"`
	Sender   string `json:"sender,omitempty"`
}

// SendSMS delivers a message through the configured proxy. An unreachable
// proxy queues the message and reports so; the caller never sees a network
// error. Sending requires SMS to be both enabled and configured in
// settings.
func (b *Building) SendSMS(ctx context.Context, to, message string) (*syncq.Result, error) {
	settings, err := b.store.Settings(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.SMS.Enabled {
		return nil, b.fail(ErrSMSDisabled, "SMS sending is disabled in settings")
	}
	if settings.SMS.ProxyEndpoint == "" {
		return nil, b.fail(ErrSMSNotConfigured, "SMS proxy endpoint is not configured")
	}

	body, err := json.Marshal(SMSMessage{
		To:       to,
		Message:  message,
		Provider: settings.SMS.Provider,
		Sender:   settings.SMS.Sender,
	})
	if err != nil {
		return nil, err
	}

	res, err := b.outbox.EnqueueOrSend(ctx, "sms", http.MethodPost, body)
	if err != nil {
		return nil, b.fail(err, "Could not queue the SMS")
	}

	switch {
	case res.Queued:
		b.warning("SMS queued; it will be sent when the proxy is reachable")
	case res.Rejected:
		return nil, b.fail(ErrRemoteRejected, fmt.Sprintf("SMS was not sent: %s", res.Response.Error))
	case res.Local:
		// settings said configured but the outbox remote is not; treat as a
		// configuration mismatch rather than a silent drop
		return nil, b.fail(ErrSMSNotConfigured, "SMS proxy endpoint is not configured")
	default:
		b.success("SMS sent")
	}
	return res, nil
}
