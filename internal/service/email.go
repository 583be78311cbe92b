package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"autorent-backend/internal/logger"
)

type emailService struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

func NewEmailService(apiKey, fromName, fromEmail string) EmailService {
	return &emailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *emailService) send(ctx context.Context, toEmail, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, "")

	logger.ExternalServiceCall("sendgrid", "send", "to", toEmail, "subject", subject)
	response, err := s.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err, "to", toEmail)
	if err != nil {
		return fmt.Errorf("send email to %s: %w", toEmail, err)
	}
	return nil
}

func (s *emailService) SendRentalApprovedNotification(ctx context.Context, email, name, carName string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour rental request for %s has been approved. You can pick up the car at the agreed time.\n\nAutoRent",
		name, carName)
	return s.send(ctx, email, name, "Your rental has been approved", body)
}

func (s *emailService) SendRentalRejectedNotification(ctx context.Context, email, name, carName, reason string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nUnfortunately your rental request for %s has been rejected.\nReason: %s\n\nAutoRent",
		name, carName, reason)
	return s.send(ctx, email, name, "Your rental request was rejected", body)
}

func (s *emailService) SendPenaltyNotice(ctx context.Context, email, name string, amount int64, description string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nA penalty of %s has been assessed on your completed rental.\nDetails: %s\n\nPlease settle it from your account page.\n\nAutoRent",
		name, formatMoney(amount), description)
	return s.send(ctx, email, name, "Penalty assessed on your rental", body)
}

func (s *emailService) SendPenaltyReminder(ctx context.Context, email, name string, amount int64) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nThis is a reminder that you have an unpaid penalty of %s.\nPlease settle it from your account page.\n\nAutoRent",
		name, formatMoney(amount))
	return s.send(ctx, email, name, "Unpaid penalty reminder", body)
}

// formatMoney renders minor currency units as a decimal amount.
func formatMoney(amount int64) string {
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}
