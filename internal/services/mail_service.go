package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	defaultBrevoBaseURL = "https://api.brevo.com"
	senderEmail         = "support@giftola.app"
	senderName          = "Giftola Support"
	appLogoURL          = "https://storage.googleapis.com/giftola-assets/giftola-favicon.png"
)

// MailService sends transactional email through the Brevo API.
type MailService struct {
	settings   *SettingsService
	baseURL    string
	httpClient *http.Client
}

// NewMailService creates a MailService. An empty baseURL selects the real
// Brevo endpoint.
func NewMailService(settings *SettingsService, baseURL string) *MailService {
	if baseURL == "" {
		baseURL = defaultBrevoBaseURL
	}
	return &MailService{
		settings:   settings,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type brevoRecipient struct {
	Email string `json:"email"`
}

type brevoSender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type brevoRequest struct {
	Sender      brevoSender      `json:"sender"`
	To          []brevoRecipient `json:"to"`
	Subject     string           `json:"subject"`
	HTMLContent string           `json:"htmlContent"`
}

// Send dispatches a single HTML email. Failures are not retried; the error
// propagates to the caller.
func (s *MailService) Send(recipient, subject, htmlBody string) error {
	settings, err := s.settings.Get()
	if err != nil {
		return fmt.Errorf("load mail settings: %w", err)
	}
	if settings.BrevoKey == "" {
		log.Println("[Mail] Brevo key not configured, skipping send")
		return nil
	}

	payload := brevoRequest{
		Sender:      brevoSender{Name: senderName, Email: senderEmail},
		To:          []brevoRecipient{{Email: recipient}},
		Subject:     subject,
		HTMLContent: htmlBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mail payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create mail request: %w", err)
	}
	req.Header.Set("api-key", settings.BrevoKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mail gateway returned status %d: %s", resp.StatusCode, raw)
	}

	return nil
}

// SendVerificationOTP mails the account-verification code.
func (s *MailService) SendVerificationOTP(email, name, otp string, expiresMinutes int) error {
	body := otpMailBody(
		"Welcome to Giftola!",
		fmt.Sprintf("Hi %s,", name),
		"Please enter the following OTP to verify your account:",
		otp,
		expiresMinutes,
		"If you did not create an account with us, please ignore this email.",
	)
	return s.Send(email, "Verify your account", body)
}

// SendForgotPasswordOTP mails the password-reset code.
func (s *MailService) SendForgotPasswordOTP(email, name, otp string, expiresMinutes int) error {
	body := otpMailBody(
		"Giftola - Forgot Password",
		fmt.Sprintf("Hi %s,", name),
		"You have requested to reset your password. Please enter the following OTP to reset your password:",
		otp,
		expiresMinutes,
		"If you didn't request a password reset, please ignore this email.",
	)
	return s.Send(email, "Forgot Password", body)
}

// SendGroupInvite mails a group invitation with an accept link.
func (s *MailService) SendGroupInvite(email, name, groupName, acceptLink string) error {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="background-color: #f7f7f7; font-family: Arial, sans-serif;">
  <table align="center" width="600" style="background-color: #ffffff; border: 1px solid #dddddd; border-radius: 4px; color: #444444;">
    <tr><td align="center" style="padding: 20px;"><img src="%s" alt="Giftola logo" height="100"></td></tr>
    <tr><td align="center" style="padding: 10px;">
      <p style="font-size: 18px;">Hi %s,</p>
      <p style="font-size: 18px;">You have been invited to join the group %s.</p>
      <p style="font-size: 18px;">Please click the button below to accept the invitation.</p>
    </td></tr>
    <tr><td align="center" style="padding: 20px;">
      <a href="%s" style="background-color: #0085ff; border-radius: 4px; color: #ffffff; font-size: 18px; font-weight: bold; padding: 10px 20px; text-decoration: none;">Accept Invitation</a>
    </td></tr>
  </table>
</body>
</html>`, appLogoURL, name, groupName, acceptLink)
	return s.Send(email, "You have been invited to a group", body)
}

// SendAppInvite mails a join-the-app invitation to a non-user.
func (s *MailService) SendAppInvite(email, invitedBy string) error {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="background-color: #f7f7f7; font-family: Arial, sans-serif;">
  <table align="center" width="600" style="background-color: #ffffff; border: 1px solid #dddddd; border-radius: 4px; color: #444444;">
    <tr><td align="center" style="padding: 20px;"><img src="%s" alt="Giftola logo" height="100"></td></tr>
    <tr><td align="center" style="padding: 10px;">
      <p style="font-size: 18px;">Hi,</p>
      <p style="font-size: 18px;">You have been invited to join Giftola by %s.</p>
      <p style="font-size: 18px;">Giftola is a social gifting platform that allows you to create groups with your friends and family and send gifts to each other.</p>
    </td></tr>
  </table>
</body>
</html>`, appLogoURL, invitedBy)
	return s.Send(email, "Giftola - Join Today", body)
}

func otpMailBody(title, greeting, instruction, otp string, expiresMinutes int, footer string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body style="background-color: #f7f7f7; font-family: Arial, sans-serif;">
  <table align="center" width="600" style="background-color: #ffffff; border: 1px solid #dddddd; border-radius: 4px; color: #444444;">
    <tr><td align="center" style="padding: 20px;"><img src="%s" alt="Giftola logo" height="100"></td></tr>
    <tr><td align="center" style="padding: 10px;">
      <p style="font-size: 18px;">%s</p>
      <p style="font-size: 18px;">%s</p>
      <p style="font-size: 24px; font-weight: bold;">%s</p>
      <p style="font-size: 18px;">This OTP will expire in %d minutes.</p>
    </td></tr>
    <tr><td align="center" style="padding: 20px;"><p style="font-size: 14px;">%s</p></td></tr>
  </table>
</body>
</html>`, title, appLogoURL, greeting, instruction, otp, expiresMinutes, footer)
}
