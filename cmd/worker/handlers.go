package main

import (
	"github.com/hibiken/asynq"

	"renthub-backend/internal/infrastructure/email"
	"renthub-backend/internal/infrastructure/email/job"
	"renthub-backend/internal/shared"
)

// HandlerRegistry wires task types to their handlers
type HandlerRegistry struct {
	paymentReceipt *job.PaymentReceiptHandler
	ownerRentAlert *job.OwnerRentAlertHandler
}

func initializeHandlers(cfg *Config) *HandlerRegistry {
	emailService := email.NewSMTPEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailFrom)

	return &HandlerRegistry{
		paymentReceipt: job.NewPaymentReceiptHandler(emailService),
		ownerRentAlert: job.NewOwnerRentAlertHandler(emailService),
	}
}

func (r *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.Handle(shared.TypePaymentReceipt, r.paymentReceipt)
	mux.Handle(shared.TypeOwnerRentAlert, r.ownerRentAlert)
}
