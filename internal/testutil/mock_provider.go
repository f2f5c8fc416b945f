package testutil

import (
	"context"

	"3tcapital/myob_attachments/internal/core/invoice"
)

// MockProvider implements invoice.Provider with overridable functions.
type MockProvider struct {
	ListInvoicesFunc       func(ctx context.Context, dateRange invoice.DateRange) ([]invoice.Invoice, error)
	ListAttachmentsFunc    func(ctx context.Context, inv invoice.Invoice) ([]invoice.Attachment, error)
	DownloadAttachmentFunc func(ctx context.Context, att invoice.Attachment) ([]byte, error)

	ListInvoicesCalls    []invoice.DateRange
	ListAttachmentsCalls []invoice.Invoice
	DownloadCalls        []invoice.Attachment
}

func (m *MockProvider) ListInvoices(ctx context.Context, dateRange invoice.DateRange) ([]invoice.Invoice, error) {
	m.ListInvoicesCalls = append(m.ListInvoicesCalls, dateRange)
	if m.ListInvoicesFunc != nil {
		return m.ListInvoicesFunc(ctx, dateRange)
	}
	return nil, nil
}

func (m *MockProvider) ListAttachments(ctx context.Context, inv invoice.Invoice) ([]invoice.Attachment, error) {
	m.ListAttachmentsCalls = append(m.ListAttachmentsCalls, inv)
	if m.ListAttachmentsFunc != nil {
		return m.ListAttachmentsFunc(ctx, inv)
	}
	return nil, nil
}

func (m *MockProvider) DownloadAttachment(ctx context.Context, att invoice.Attachment) ([]byte, error) {
	m.DownloadCalls = append(m.DownloadCalls, att)
	if m.DownloadAttachmentFunc != nil {
		return m.DownloadAttachmentFunc(ctx, att)
	}
	return []byte("pdf"), nil
}

// MockStore implements invoice.Store with an overridable save function.
type MockStore struct {
	SaveFunc  func(inv invoice.Invoice, att invoice.Attachment, content []byte) (string, error)
	SaveCalls []SaveCall
}

// SaveCall records one Save invocation.
type SaveCall struct {
	Invoice    invoice.Invoice
	Attachment invoice.Attachment
	Content    []byte
}

func (m *MockStore) Save(inv invoice.Invoice, att invoice.Attachment, content []byte) (string, error) {
	m.SaveCalls = append(m.SaveCalls, SaveCall{Invoice: inv, Attachment: att, Content: content})
	if m.SaveFunc != nil {
		return m.SaveFunc(inv, att, content)
	}
	return "invoice_pdfs/" + att.OriginalFileName, nil
}
