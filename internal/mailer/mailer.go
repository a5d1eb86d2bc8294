// Package mailer delivers admin replies to enquiries. Delivery is pluggable:
// the default composes a mailto link the admin opens in their own mail
// client, the log mode simulates a send. A real transactional provider would
// implement the same interface.
package mailer

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"
)

type Request struct {
	To      string
	Subject string
	Body    string
	// Sender annotates the outgoing message; it does not affect delivery.
	Sender string
	// Service labels the transport in the simulated path. Comes from the
	// content settings, so it is resolved per request.
	Service string
}

type Result struct {
	// Delivered is true when the transport handled delivery itself.
	Delivered bool `json:"delivered"`
	// MailtoURL is set by the mailto composer for the admin UI to open.
	MailtoURL string `json:"mailtoUrl,omitempty"`
}

type Mailer interface {
	SendReply(ctx context.Context, req Request) (Result, error)
}

func New(mode string) Mailer {
	if mode == "log" {
		return &LogMailer{}
	}
	return &MailtoMailer{}
}

// MailtoMailer hands the message off to the visitor's own mail client.
type MailtoMailer struct{}

func (m *MailtoMailer) SendReply(ctx context.Context, req Request) (Result, error) {
	if req.To == "" {
		return Result{}, errors.New("mailer: missing recipient")
	}

	body := req.Body
	if req.Sender != "" {
		body += "\n\n-- " + req.Sender
	}

	return Result{
		Delivered: false,
		MailtoURL: "mailto:" + req.To +
			"?subject=" + encodeMailtoValue(req.Subject) +
			"&body=" + encodeMailtoValue(body),
	}, nil
}

// encodeMailtoValue percent-encodes a mailto query value. Spaces must come
// out as %20, not +, or some mail clients show the plus signs literally.
func encodeMailtoValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// LogMailer simulates delivery.
type LogMailer struct{}

func (m *LogMailer) SendReply(ctx context.Context, req Request) (Result, error) {
	if req.To == "" {
		return Result{}, errors.New("mailer: missing recipient")
	}

	service := req.Service
	if service == "" {
		service = "simulated"
	}
	log.Printf("mailer: sent reply to %s via %s (subject %q)", req.To, service, req.Subject)
	return Result{Delivered: true}, nil
}
