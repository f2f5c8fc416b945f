package invoice

import (
	"context"
	"time"
)

// Credentials identifies the caller against the MYOB AccountRight API.
// Both values are issued externally and treated as opaque strings.
type Credentials struct {
	ClientID    string // sent as x-myobapi-key
	AccessToken string // sent as Authorization: Bearer
}

// DateRange bounds an invoice search by issue date, inclusive on both ends.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Invoice is a purchase bill as returned by the AccountRight API.
type Invoice struct {
	UID       string
	Number    string
	IssueDate time.Time
}

// Attachment references a file attached to an invoice. FileURI is a
// time-limited pre-signed link; it is consumed once and never stored.
type Attachment struct {
	InvoiceUID       string
	OriginalFileName string
	FileURI          string
}

// Summary aggregates the outcome of one fetch run.
type Summary struct {
	InvoicesFound     int
	AttachmentsFound  int
	AttachmentsSaved  int
	AttachmentsFailed int
}

// Provider retrieves invoices and attachment content from the accounting API.
type Provider interface {
	// ListInvoices returns the invoices issued within the range, in the
	// order the API returns them.
	ListInvoices(ctx context.Context, dateRange DateRange) ([]Invoice, error)
	// ListAttachments returns the attachment metadata for one invoice.
	// An invoice without attachments yields an empty slice, not an error.
	ListAttachments(ctx context.Context, inv Invoice) ([]Attachment, error)
	// DownloadAttachment fetches the attachment content through its
	// pre-signed URL. Expired URLs fail terminally; there is no retry.
	DownloadAttachment(ctx context.Context, att Attachment) ([]byte, error)
}

// Store persists downloaded attachment content.
type Store interface {
	// Save writes the content under a name derived from the invoice and
	// attachment, returning the path of the written file.
	Save(inv Invoice, att Attachment, content []byte) (string, error)
}
