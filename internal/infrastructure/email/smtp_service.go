package email

import (
	"context"
	"fmt"
	"net/smtp"
)

// PaymentReceiptData is the payload for a payer confirmation email
type PaymentReceiptData struct {
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	OrderID     string `json:"order_id"`
	Amount      string `json:"amount"`
	PaymentType string `json:"payment_type"`
}

// OwnerRentAlertData is the payload for the owner rent-received email
type OwnerRentAlertData struct {
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	OrderID       string `json:"order_id"`
	Amount        string `json:"amount"`
	PropertyTitle string `json:"property_title"`
}

type EmailService interface {
	SendPaymentReceipt(ctx context.Context, data PaymentReceiptData) error
	SendOwnerRentAlert(ctx context.Context, data OwnerRentAlertData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	if from == "" {
		from = "noreply@renthub.dev"
	}
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendPaymentReceipt(ctx context.Context, data PaymentReceiptData) error {
	subject := fmt.Sprintf("Payment received - %s", data.OrderID)
	body := fmt.Sprintf(`Hi %s,

We have received your %s payment.

Order reference: %s
Amount: %s

Thank you for using RentHub.`, data.FirstName, data.PaymentType, data.OrderID, data.Amount)

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) SendOwnerRentAlert(ctx context.Context, data OwnerRentAlertData) error {
	subject := fmt.Sprintf("Rent received - %s", data.PropertyTitle)
	body := fmt.Sprintf(`Hi %s,

A rent payment for your property "%s" has been completed.

Order reference: %s
Amount: %s

The funds will be included in your next settlement.`, data.FirstName, data.PropertyTitle, data.OrderID, data.Amount)

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, to, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
