package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultMailEndpoint = "https://api.brevo.com/v3/smtp/email"

// MailNotifier envia o e-mail transacional de confirmação/cancelamento
// para o paciente. Retorna nil quando o paciente não tem e-mail.
type MailNotifier struct {
	apiKey      string
	senderEmail string
	senderName  string
	endpoint    string
	httpClient  *http.Client
}

func NewMailNotifier(apiKey, senderEmail, senderName string) *MailNotifier {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(senderEmail) == "" {
		return nil
	}
	if strings.TrimSpace(senderName) == "" {
		senderName = senderEmail
	}
	return &MailNotifier{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  senderName,
		endpoint:    defaultMailEndpoint,
		httpClient:  &http.Client{Timeout: 8 * time.Second},
	}
}

func (m *MailNotifier) Send(ctx context.Context, ev Event) error {
	if m == nil {
		return errors.New("mail notifier is nil")
	}
	if ev.Patient.Email == "" {
		return nil
	}

	var subject string
	switch ev.Type {
	case EventCancelled:
		subject = "Sessão cancelada - PsicoCare"
	default:
		subject = "Sessão agendada - PsicoCare"
	}

	htmlBody, err := buildAppointmentHTML(ev)
	if err != nil {
		return err
	}

	return m.sendHTML(ctx, ev.Patient.Email, ev.Patient.Name, subject, htmlBody)
}

type mailPayload struct {
	Sender struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"sender"`
	To []struct {
		Email string `json:"email"`
		Name  string `json:"name,omitempty"`
	} `json:"to"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"htmlContent"`
}

func (m *MailNotifier) sendHTML(ctx context.Context, toEmail, toName, subject, htmlBody string) error {
	var payload mailPayload
	payload.Sender.Name = m.senderName
	payload.Sender.Email = m.senderEmail
	payload.To = []struct {
		Email string `json:"email"`
		Name  string `json:"name,omitempty"`
	}{{Email: toEmail, Name: toName}}
	payload.Subject = subject
	payload.HTMLContent = htmlBody

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail api status %d: %s", resp.StatusCode, string(raw))
	}

	return nil
}
