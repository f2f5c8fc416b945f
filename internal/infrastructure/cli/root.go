package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"3tcapital/myob_attachments/internal/application/fetcher"
	"3tcapital/myob_attachments/internal/core/invoice"
)

// Fetcher runs one fetch pass over a date range.
type Fetcher interface {
	Run(ctx context.Context, dateRange invoice.DateRange) (invoice.Summary, error)
}

// Dependencies wires the command to the application layer.
type Dependencies struct {
	// NewFetcher builds the fetch service once credentials and output
	// directory are known.
	NewFetcher func(credentials invoice.Credentials, outputDir string) Fetcher
	Output     io.Writer
}

// NewRootCommand builds the myobfetch command. Flags resolve through
// viper, so MYOB_CLIENT_ID and friends work as environment fallbacks.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	var (
		clientIDInput    string
		accessTokenInput string
		startDateInput   string
		endDateInput     string
		outputDirInput   string
	)

	v := viper.New()

	command := &cobra.Command{
		Use:           "myobfetch",
		Short:         "Download MYOB invoice attachments for a date range",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			credentials := invoice.Credentials{
				ClientID:    strings.TrimSpace(v.GetString("myob-client-id")),
				AccessToken: strings.TrimSpace(v.GetString("myob-access-token")),
			}
			if credentials.ClientID == "" {
				return &invoice.ValidationError{Field: "myob-client-id", Reason: "is required"}
			}
			if credentials.AccessToken == "" {
				return &invoice.ValidationError{Field: "myob-access-token", Reason: "is required"}
			}

			dateRange, err := fetcher.ParseDateRange(
				strings.TrimSpace(v.GetString("start-date")),
				strings.TrimSpace(v.GetString("end-date")),
			)
			if err != nil {
				return err
			}

			summary, err := dependencies.NewFetcher(credentials, v.GetString("output-dir")).Run(cmd.Context(), dateRange)
			if err != nil {
				return err
			}

			output := dependencies.Output
			if output == nil {
				output = io.Discard
			}
			return writeSummary(output, summary)
		},
	}

	command.Flags().StringVar(&clientIDInput, "myob-client-id", "", "MYOB client ID (API key)")
	command.Flags().StringVar(&accessTokenInput, "myob-access-token", "", "MYOB OAuth access token")
	command.Flags().StringVar(&startDateInput, "start-date", "", "Start date in YYYY-MM-DD format")
	command.Flags().StringVar(&endDateInput, "end-date", "", "End date in YYYY-MM-DD format")
	command.Flags().StringVar(&outputDirInput, "output-dir", "", "Directory for downloaded attachments (default \"invoice_pdfs\")")

	_ = v.BindPFlags(command.Flags())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return command
}

func writeSummary(output io.Writer, summary invoice.Summary) error {
	_, err := fmt.Fprintf(output,
		"Invoices found:         %d\nAttachments found:      %d\nAttachments downloaded: %d\nAttachments failed:     %d\n",
		summary.InvoicesFound,
		summary.AttachmentsFound,
		summary.AttachmentsSaved,
		summary.AttachmentsFailed,
	)
	return err
}
