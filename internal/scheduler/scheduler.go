package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rrinox/orcamentos/internal/domain/models"
	"github.com/rrinox/orcamentos/internal/service/notify"
	"github.com/rrinox/orcamentos/internal/service/quotations"
	"github.com/rrinox/orcamentos/pkg/pdf"
)

// Scheduler periodically sends a summary of the quotation pipeline — how many
// quotations sit in each status and their combined value — to the sales group.
type Scheduler struct {
	cron     *cron.Cron
	quotes   *quotations.Service
	notifier *notify.Service
	schedule string
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(schedule string, quotes *quotations.Service, notifier *notify.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:     cron.New(),
		quotes:   quotes,
		notifier: notifier,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the pipeline summary job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.sendPipelineSummary); err != nil {
		s.logger.Error("failed to schedule pipeline summary", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sendPipelineSummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	records, err := s.quotes.List(ctx)
	if err != nil {
		s.logger.Error("failed to load quotations for summary", zap.Error(err))
		return
	}

	if err := s.notifier.SendSummary(ctx, ComposeSummary(records)); err != nil {
		s.logger.Error("failed to send pipeline summary", zap.Error(err))
		return
	}

	s.logger.Info("pipeline summary sent", zap.Int("quotations", len(records)))
}

// ComposeSummary builds the summary text: one line per status with count and
// combined total. Records with an unknown status are grouped under "outros".
func ComposeSummary(records []models.QuotationRecord) string {
	counts := make(map[string]int)
	totals := make(map[string]decimal.Decimal)

	for _, rec := range records {
		status := rec.Status
		if _, err := models.ParseStatus(status); err != nil {
			status = "outros"
		}
		counts[status]++
		if rec.Total != nil {
			totals[status] = totals[status].Add(*rec.Total)
		}
	}

	var b strings.Builder
	b.WriteString("Resumo semanal de orçamentos:\n")
	for _, status := range models.AllStatuses() {
		if counts[string(status)] == 0 {
			continue
		}
		fmt.Fprintf(&b, "• %s: %d (%s)\n", status, counts[string(status)], pdf.FormatBRL(totals[string(status)]))
	}
	if counts["outros"] > 0 {
		fmt.Fprintf(&b, "• outros: %d (%s)\n", counts["outros"], pdf.FormatBRL(totals["outros"]))
	}
	if len(records) == 0 {
		b.WriteString("Nenhum orçamento registrado.\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
