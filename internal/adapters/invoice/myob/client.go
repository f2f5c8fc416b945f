package myob

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"3tcapital/myob_attachments/internal/core/invoice"
)

const (
	// DefaultBaseURL is the AccountRight API root. A GET on it lists the
	// company files available to the token; requests go to the first one.
	DefaultBaseURL = "https://api.myob.com/accountright/"

	apiVersion = "v2"

	// billDateLayout is the timestamp format AccountRight uses for bill
	// dates, both in responses and in $filter expressions.
	billDateLayout = "2006-01-02T15:04:05"
)

// HTTPClient interface allows using both standard and traced HTTP clients.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements invoice.Provider against the MYOB AccountRight API.
type Client struct {
	baseURL     string
	credentials invoice.Credentials
	client      HTTPClient
	downloader  HTTPClient // pre-signed URLs must be fetched without auth headers
	log         *slog.Logger

	mu     sync.Mutex // protects apiURL resolution
	apiURL string
}

// NewClient creates a MYOB AccountRight client. If baseURL is empty the
// public API root is used. downloader may be nil, in which case client is
// used for pre-signed fetches as well.
func NewClient(baseURL string, credentials invoice.Credentials, client HTTPClient, downloader HTTPClient, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if downloader == nil {
		downloader = client
	}
	return &Client{
		baseURL:     baseURL,
		credentials: credentials,
		client:      client,
		downloader:  downloader,
		log:         log,
	}
}

// companyFileURL resolves and caches the request base URL for the first
// company file visible to the credentials.
func (c *Client) companyFileURL(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.apiURL != "" {
		return c.apiURL, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	c.setAPIHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("list company files: %w", err)
	}
	defer resp.Body.Close()

	if err := classifyStatus("list company files", resp); err != nil {
		return "", err
	}

	var files []companyFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return "", fmt.Errorf("parse company file list: %w", err)
	}
	if len(files) == 0 || files[0].URI == "" {
		return "", &invoice.APIError{Operation: "list company files", StatusCode: resp.StatusCode, Body: "no company files available"}
	}

	c.apiURL = strings.TrimRight(files[0].URI, "/")
	c.log.Info("using company file", "url", c.apiURL)
	return c.apiURL, nil
}

// ListInvoices returns the purchase bills dated within the range, newest
// first, as the API orders them.
func (c *Client) ListInvoices(ctx context.Context, dateRange invoice.DateRange) ([]invoice.Invoice, error) {
	base, err := c.companyFileURL(ctx)
	if err != nil {
		return nil, err
	}

	endpoint, err := url.Parse(base + "/Purchase/Bill")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	query := endpoint.Query()
	query.Set("$filter", fmt.Sprintf(
		"Date ge datetime'%sT00:00:00' and Date le datetime'%sT23:59:59'",
		dateRange.Start.Format("2006-01-02"),
		dateRange.End.Format("2006-01-02"),
	))
	query.Set("$orderby", "Date desc")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setAPIHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer resp.Body.Close()

	if err := classifyStatus("list invoices", resp); err != nil {
		return nil, err
	}

	var payload billListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parse invoice list: %w", err)
	}

	invoices := make([]invoice.Invoice, 0, len(payload.Items))
	for _, item := range payload.Items {
		issueDate, parseErr := time.Parse(billDateLayout, item.Date)
		if parseErr != nil {
			// The issue date names the output file; a bill without a
			// readable date would be saved under a wrong name.
			c.log.Error("skipping invoice with unparseable date", "invoice", item.Number, "date", item.Date)
			continue
		}
		invoices = append(invoices, invoice.Invoice{
			UID:       item.UID,
			Number:    item.Number,
			IssueDate: issueDate,
		})
	}

	return invoices, nil
}

// ListAttachments returns the attachment metadata for one bill. Bills
// without attachments produce an empty slice.
func (c *Client) ListAttachments(ctx context.Context, inv invoice.Invoice) ([]invoice.Attachment, error) {
	base, err := c.companyFileURL(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/Purchase/Bill/Service/%s/Attachment", base, url.PathEscape(inv.UID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setAPIHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer resp.Body.Close()

	if err := classifyStatus("list attachments", resp); err != nil {
		return nil, err
	}

	var payload attachmentListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parse attachment list: %w", err)
	}

	attachments := make([]invoice.Attachment, 0, len(payload.Attachments))
	for _, item := range payload.Attachments {
		attachments = append(attachments, invoice.Attachment{
			InvoiceUID:       inv.UID,
			OriginalFileName: item.OriginalFileName,
			FileURI:          item.FileURI,
		})
	}

	return attachments, nil
}

// DownloadAttachment fetches the attachment content through its pre-signed
// URL. The link embeds its own authorization; no API headers are sent.
func (c *Client) DownloadAttachment(ctx context.Context, att invoice.Attachment) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, att.FileURI, nil)
	if err != nil {
		return nil, &invoice.DownloadError{FileName: att.OriginalFileName, Err: err}
	}

	resp, err := c.downloader.Do(req)
	if err != nil {
		return nil, &invoice.DownloadError{FileName: att.OriginalFileName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &invoice.DownloadError{
			FileName: att.OriginalFileName,
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &invoice.DownloadError{FileName: att.OriginalFileName, Err: err}
	}

	return content, nil
}

func (c *Client) setAPIHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.credentials.AccessToken)
	req.Header.Set("x-myobapi-key", c.credentials.ClientID)
	req.Header.Set("x-myobapi-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

// classifyStatus maps non-2xx listing responses onto the domain error
// kinds: 401/403 mean rejected credentials, the rest is an API failure.
func classifyStatus(operation string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &invoice.AuthenticationError{StatusCode: resp.StatusCode}
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &invoice.APIError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
