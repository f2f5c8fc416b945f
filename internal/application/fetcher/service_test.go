package fetcher

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"3tcapital/myob_attachments/internal/core/invoice"
	"3tcapital/myob_attachments/internal/testutil"
)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name        string
		start       string
		end         string
		expectedErr string
	}{
		{
			name:  "valid range",
			start: "2024-12-01",
			end:   "2024-12-31",
		},
		{
			name:  "single day range",
			start: "2024-12-04",
			end:   "2024-12-04",
		},
		{
			name:        "empty start date",
			start:       "",
			end:         "2024-12-31",
			expectedErr: "start date",
		},
		{
			name:        "empty end date",
			start:       "2024-12-01",
			end:         "",
			expectedErr: "end date",
		},
		{
			name:        "malformed start date",
			start:       "01/12/2024",
			end:         "2024-12-31",
			expectedErr: "must be YYYY-MM-DD",
		},
		{
			name:        "malformed end date",
			start:       "2024-12-01",
			end:         "31-12-2024",
			expectedErr: "must be YYYY-MM-DD",
		},
		{
			name:        "start after end",
			start:       "2024-12-31",
			end:         "2024-12-01",
			expectedErr: "start date must be before or equal to end date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dateRange, err := ParseDateRange(tt.start, tt.end)

			if tt.expectedErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.expectedErr)
				}
				if !strings.Contains(err.Error(), tt.expectedErr) {
					t.Errorf("expected error containing %q, got %q", tt.expectedErr, err.Error())
				}
				var validationErr *invoice.ValidationError
				if !errors.As(err, &validationErr) {
					t.Errorf("expected a ValidationError, got %T", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := dateRange.Start.Format("2006-01-02"); got != tt.start {
				t.Errorf("expected start %s, got %s", tt.start, got)
			}
			if got := dateRange.End.Format("2006-01-02"); got != tt.end {
				t.Errorf("expected end %s, got %s", tt.end, got)
			}
		})
	}
}

func testInvoice(uid, number, date string) invoice.Invoice {
	issueDate, _ := time.Parse("2006-01-02", date)
	return invoice.Invoice{UID: uid, Number: number, IssueDate: issueDate}
}

func TestService_Run_PassesRangeUnchanged(t *testing.T) {
	provider := &testutil.MockProvider{}
	service := NewService(provider, &testutil.MockStore{}, testutil.NewNullLogger())

	dateRange, err := ParseDateRange("2024-12-01", "2024-12-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.Run(context.Background(), dateRange); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(provider.ListInvoicesCalls) != 1 {
		t.Fatalf("expected 1 ListInvoices call, got %d", len(provider.ListInvoicesCalls))
	}
	if provider.ListInvoicesCalls[0] != dateRange {
		t.Errorf("expected range %v, got %v", dateRange, provider.ListInvoicesCalls[0])
	}
}

func TestService_Run_ListInvoicesFailureAborts(t *testing.T) {
	wantErr := &invoice.AuthenticationError{StatusCode: 401}
	provider := &testutil.MockProvider{
		ListInvoicesFunc: func(ctx context.Context, dateRange invoice.DateRange) ([]invoice.Invoice, error) {
			return nil, wantErr
		},
	}
	store := &testutil.MockStore{}
	service := NewService(provider, store, testutil.NewNullLogger())

	_, err := service.Run(context.Background(), invoice.DateRange{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var authErr *invoice.AuthenticationError
	if !errors.As(err, &authErr) {
		t.Errorf("expected an AuthenticationError, got %T", err)
	}
	if len(store.SaveCalls) != 0 {
		t.Errorf("expected no saves after fatal listing error, got %d", len(store.SaveCalls))
	}
}

func TestService_Run_InvoiceWithoutAttachments(t *testing.T) {
	provider := &testutil.MockProvider{
		ListInvoicesFunc: func(ctx context.Context, dateRange invoice.DateRange) ([]invoice.Invoice, error) {
			return []invoice.Invoice{testInvoice("uid-1", "00000001", "2024-12-04")}, nil
		},
	}
	service := NewService(provider, &testutil.MockStore{}, testutil.NewNullLogger())

	summary, err := service.Run(context.Background(), invoice.DateRange{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := invoice.Summary{InvoicesFound: 1}
	if summary != expected {
		t.Errorf("expected summary %+v, got %+v", expected, summary)
	}
}

func TestService_Run_DownloadFailureDoesNotAbort(t *testing.T) {
	invoices := []invoice.Invoice{
		testInvoice("uid-1", "00000001", "2024-12-04"),
		testInvoice("uid-2", "00000002", "2024-12-05"),
	}
	attachments := map[string][]invoice.Attachment{
		"uid-1": {
			{InvoiceUID: "uid-1", OriginalFileName: "a.pdf", FileURI: "https://files.example/a"},
			{InvoiceUID: "uid-1", OriginalFileName: "b.pdf", FileURI: "https://files.example/b"},
		},
		"uid-2": {
			{InvoiceUID: "uid-2", OriginalFileName: "c.pdf", FileURI: "https://files.example/c"},
		},
	}

	provider := &testutil.MockProvider{
		ListInvoicesFunc: func(ctx context.Context, dateRange invoice.DateRange) ([]invoice.Invoice, error) {
			return invoices, nil
		},
		ListAttachmentsFunc: func(ctx context.Context, inv invoice.Invoice) ([]invoice.Attachment, error) {
			return attachments[inv.UID], nil
		},
		DownloadAttachmentFunc: func(ctx context.Context, att invoice.Attachment) ([]byte, error) {
			if att.OriginalFileName == "a.pdf" {
				return nil, &invoice.DownloadError{FileName: att.OriginalFileName, Err: errors.New("status 403: expired")}
			}
			return []byte("%PDF-1.4"), nil
		},
	}
	store := &testutil.MockStore{}
	service := NewService(provider, store, testutil.NewNullLogger())

	summary, err := service.Run(context.Background(), invoice.DateRange{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := invoice.Summary{
		InvoicesFound:     2,
		AttachmentsFound:  3,
		AttachmentsSaved:  2,
		AttachmentsFailed: 1,
	}
	if summary != expected {
		t.Errorf("expected summary %+v, got %+v", expected, summary)
	}
	if len(store.SaveCalls) != 2 {
		t.Errorf("expected 2 saves, got %d", len(store.SaveCalls))
	}
	if summary.AttachmentsSaved > summary.AttachmentsFound {
		t.Error("saved count must never exceed found count")
	}
}

func TestService_Run_StoreFailureCountsAsFailed(t *testing.T) {
	provider := &testutil.MockProvider{
		ListInvoicesFunc: func(ctx context.Context, dateRange invoice.DateRange) ([]invoice.Invoice, error) {
			return []invoice.Invoice{testInvoice("uid-1", "00000001", "2024-12-04")}, nil
		},
		ListAttachmentsFunc: func(ctx context.Context, inv invoice.Invoice) ([]invoice.Attachment, error) {
			return []invoice.Attachment{
				{InvoiceUID: inv.UID, OriginalFileName: "a.pdf", FileURI: "https://files.example/a"},
			}, nil
		},
	}
	store := &testutil.MockStore{
		SaveFunc: func(inv invoice.Invoice, att invoice.Attachment, content []byte) (string, error) {
			return "", &invoice.StoreError{Path: "invoice_pdfs/a.pdf", Err: errors.New("permission denied")}
		},
	}
	service := NewService(provider, store, testutil.NewNullLogger())

	summary, err := service.Run(context.Background(), invoice.DateRange{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.AttachmentsFailed != 1 || summary.AttachmentsSaved != 0 {
		t.Errorf("expected 1 failed and 0 saved, got %+v", summary)
	}
}

func TestService_Run_AttachmentListingFailureSkipsInvoice(t *testing.T) {
	provider := &testutil.MockProvider{
		ListInvoicesFunc: func(ctx context.Context, dateRange invoice.DateRange) ([]invoice.Invoice, error) {
			return []invoice.Invoice{
				testInvoice("uid-1", "00000001", "2024-12-04"),
				testInvoice("uid-2", "00000002", "2024-12-05"),
			}, nil
		},
		ListAttachmentsFunc: func(ctx context.Context, inv invoice.Invoice) ([]invoice.Attachment, error) {
			if inv.UID == "uid-1" {
				return nil, &invoice.APIError{Operation: "list attachments", StatusCode: 500}
			}
			return []invoice.Attachment{
				{InvoiceUID: inv.UID, OriginalFileName: "c.pdf", FileURI: "https://files.example/c"},
			}, nil
		},
	}
	store := &testutil.MockStore{}
	service := NewService(provider, store, testutil.NewNullLogger())

	summary, err := service.Run(context.Background(), invoice.DateRange{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := invoice.Summary{
		InvoicesFound:    2,
		AttachmentsFound: 1,
		AttachmentsSaved: 1,
	}
	if summary != expected {
		t.Errorf("expected summary %+v, got %+v", expected, summary)
	}
}

func TestService_Run_MissingFileURICountsAsFailed(t *testing.T) {
	provider := &testutil.MockProvider{
		ListInvoicesFunc: func(ctx context.Context, dateRange invoice.DateRange) ([]invoice.Invoice, error) {
			return []invoice.Invoice{testInvoice("uid-1", "00000001", "2024-12-04")}, nil
		},
		ListAttachmentsFunc: func(ctx context.Context, inv invoice.Invoice) ([]invoice.Attachment, error) {
			return []invoice.Attachment{
				{InvoiceUID: inv.UID, OriginalFileName: "a.pdf"},
			}, nil
		},
	}
	service := NewService(provider, &testutil.MockStore{}, testutil.NewNullLogger())

	summary, err := service.Run(context.Background(), invoice.DateRange{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.AttachmentsFailed != 1 {
		t.Errorf("expected 1 failed attachment, got %+v", summary)
	}
	if len(provider.DownloadCalls) != 0 {
		t.Errorf("expected no download attempt without a file URI, got %d", len(provider.DownloadCalls))
	}
}
