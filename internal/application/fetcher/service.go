package fetcher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"3tcapital/myob_attachments/internal/core/invoice"
)

const dateLayout = "2006-01-02"

// errNoFileURI marks attachment metadata that carries no download link.
var errNoFileURI = errors.New("attachment has no file URI")

// Service orchestrates one fetch run: list invoices in range, list each
// invoice's attachments, download and save every attachment best-effort.
type Service struct {
	provider invoice.Provider
	store    invoice.Store
	log      *slog.Logger
}

// NewService creates a fetch service over the given provider and store.
func NewService(provider invoice.Provider, store invoice.Store, log *slog.Logger) *Service {
	return &Service{
		provider: provider,
		store:    store,
		log:      log,
	}
}

// ParseDateRange validates and parses a YYYY-MM-DD start/end pair.
func ParseDateRange(start, end string) (invoice.DateRange, error) {
	if start == "" {
		return invoice.DateRange{}, &invoice.ValidationError{Field: "start date", Reason: "is required"}
	}
	if end == "" {
		return invoice.DateRange{}, &invoice.ValidationError{Field: "end date", Reason: "is required"}
	}

	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return invoice.DateRange{}, &invoice.ValidationError{Field: "start date", Reason: "must be YYYY-MM-DD"}
	}

	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return invoice.DateRange{}, &invoice.ValidationError{Field: "end date", Reason: "must be YYYY-MM-DD"}
	}

	if startDate.After(endDate) {
		return invoice.DateRange{}, &invoice.ValidationError{Field: "date range", Reason: "start date must be before or equal to end date"}
	}

	return invoice.DateRange{Start: startDate, End: endDate}, nil
}

// Run executes one fetch pass over the range. Listing failures abort the
// run; download and save failures are logged, counted and skipped so the
// remaining attachments still get a chance. The returned summary is valid
// whenever the error is nil.
func (s *Service) Run(ctx context.Context, dateRange invoice.DateRange) (invoice.Summary, error) {
	var summary invoice.Summary

	invoices, err := s.provider.ListInvoices(ctx, dateRange)
	if err != nil {
		return summary, err
	}

	summary.InvoicesFound = len(invoices)
	s.log.Info("invoices found",
		"count", len(invoices),
		"start", dateRange.Start.Format(dateLayout),
		"end", dateRange.End.Format(dateLayout),
	)

	for _, inv := range invoices {
		s.processInvoice(ctx, inv, &summary)
	}

	s.log.Info("run complete",
		"invoices_found", summary.InvoicesFound,
		"attachments_found", summary.AttachmentsFound,
		"attachments_saved", summary.AttachmentsSaved,
		"attachments_failed", summary.AttachmentsFailed,
	)

	return summary, nil
}

func (s *Service) processInvoice(ctx context.Context, inv invoice.Invoice, summary *invoice.Summary) {
	s.log.Info("processing invoice", "number", inv.Number, "date", inv.IssueDate.Format(dateLayout))

	attachments, err := s.provider.ListAttachments(ctx, inv)
	if err != nil {
		// A broken attachment listing only loses this invoice's files;
		// the rest of the range is still processed.
		s.log.Error("failed to list attachments", "invoice", inv.Number, "error", err)
		return
	}

	if len(attachments) == 0 {
		s.log.Info("no attachments", "invoice", inv.Number)
		return
	}

	summary.AttachmentsFound += len(attachments)
	s.log.Info("attachments found", "invoice", inv.Number, "count", len(attachments))

	for _, att := range attachments {
		if err := s.fetchAttachment(ctx, inv, att); err != nil {
			summary.AttachmentsFailed++
			s.log.Error("attachment failed", "invoice", inv.Number, "file", att.OriginalFileName, "error", err)
			continue
		}
		summary.AttachmentsSaved++
	}
}

func (s *Service) fetchAttachment(ctx context.Context, inv invoice.Invoice, att invoice.Attachment) error {
	if att.FileURI == "" {
		return &invoice.DownloadError{FileName: att.OriginalFileName, Err: errNoFileURI}
	}

	content, err := s.provider.DownloadAttachment(ctx, att)
	if err != nil {
		return err
	}

	path, err := s.store.Save(inv, att, content)
	if err != nil {
		return err
	}

	s.log.Info("attachment saved", "invoice", inv.Number, "path", path, "size_bytes", len(content))
	return nil
}
