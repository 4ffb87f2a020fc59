package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rrinox/orcamentos/internal/domain/models"
	"github.com/rrinox/orcamentos/pkg/clients/whatsapp"
	"github.com/rrinox/orcamentos/pkg/pdf"
)

// Service sends quotation lifecycle notifications over WhatsApp to a single
// configured recipient (typically the sales group).
type Service struct {
	client    whatsapp.Client
	recipient string
	logger    *zap.Logger
}

// NewService wires the notification service.
func NewService(client whatsapp.Client, recipient string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, recipient: recipient, logger: logger}
}

// QuotationSaved announces a newly persisted quotation.
func (s *Service) QuotationSaved(ctx context.Context, rec models.QuotationRecord) error {
	total := ""
	if rec.Total != nil {
		total = pdf.FormatBRL(*rec.Total)
	}

	body := fmt.Sprintf("Novo orçamento %s para %s no valor de %s.", rec.Number, rec.Client.Name, total)
	return s.send(ctx, body)
}

// QuotationAccepted announces that a quotation was accepted by the client.
func (s *Service) QuotationAccepted(ctx context.Context, rec models.QuotationRecord) error {
	body := fmt.Sprintf("Orçamento %s de %s foi aceito! 🎉", rec.Number, rec.Client.Name)
	return s.send(ctx, body)
}

// SendSummary delivers a free-form summary text, used by the weekly
// pipeline report.
func (s *Service) SendSummary(ctx context.Context, text string) error {
	return s.send(ctx, text)
}

func (s *Service) send(ctx context.Context, body string) error {
	if _, err := s.client.SendTextMessage(ctx, whatsapp.SendTextMessageRequest{
		To:   s.recipient,
		Body: body,
	}); err != nil {
		return err
	}

	s.logger.Debug("notification sent", zap.String("recipient", s.recipient))
	return nil
}
