// Package notification builds and sends the operational emails: a stock
// report after a refresh and order-submitted notices. Delivery is always
// best-effort; a mail failure is logged and never fails the triggering
// operation.
package notification

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sheetstock/backend/internal/domain/stock"
)

// Mailer delivers a plain-text message to one or more recipients.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// Service sends application notifications through a Mailer.
type Service struct {
	mailer           Mailer
	reportRecipients []string
	logger           *zap.Logger
}

// NewService creates a notification service. A nil mailer disables all
// notifications.
func NewService(mailer Mailer, reportRecipients []string, logger *zap.Logger) *Service {
	return &Service{
		mailer:           mailer,
		reportRecipients: reportRecipients,
		logger:           logger,
	}
}

// StockReport mails the outcome of a stock refresh to the configured report
// recipients.
func (s *Service) StockReport(ctx context.Context, rows []stock.SummaryRow) {
	if s.mailer == nil || len(s.reportRecipients) == 0 {
		return
	}
	subject := fmt.Sprintf("Stock summary (%d materials)", len(rows))
	if err := s.mailer.Send(ctx, s.reportRecipients, subject, stockReportBody(rows)); err != nil {
		s.logger.Warn("Failed to send stock report", zap.Error(err))
	}
}

// OrderSubmitted mails an order confirmation to the report recipients.
func (s *Service) OrderSubmitted(ctx context.Context, kind, orderID, counterparty string) {
	if s.mailer == nil || len(s.reportRecipients) == 0 {
		return
	}
	subject := fmt.Sprintf("%s order submitted: %s", kind, orderID)
	body := fmt.Sprintf("A new %s order %s for %s has been recorded.\n", strings.ToLower(kind), orderID, counterparty)
	if err := s.mailer.Send(ctx, s.reportRecipients, subject, body); err != nil {
		s.logger.Warn("Failed to send order notification",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}
}

// stockReportBody renders the summary as a fixed-width text table.
func stockReportBody(rows []stock.SummaryRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-20s %8s %8s %8s %8s %8s %8s\n",
		"Material", "Name", "Sent", "Outgoing", "Received", "Incoming", "Net", "Manual")
	for _, row := range rows {
		fmt.Fprintf(&b, "%-12s %-20s %8d %8d %8d %8d %8d %8d\n",
			row.MaterialID, row.Name, row.Sent, row.Outgoing, row.Received, row.Incoming, row.Net, row.Manual)
	}
	return b.String()
}
