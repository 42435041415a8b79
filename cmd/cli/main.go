package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/custodyledger/internal/domain"
	"github.com/iho/custodyledger/internal/domain/document"
	"github.com/iho/custodyledger/internal/infrastructure/logger"
	"github.com/iho/custodyledger/internal/infrastructure/postgres"
)

// Schema migration entry points, replaced in tests.
var (
	migrateUp   = postgres.RunMigrations
	migrateDown = postgres.RunMigrationsDown
)

type options struct {
	baseURL string
	timeout time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "custodyledger-cli",
		Short:         "Custody ledger CLI tool",
		Long:          `A command line interface for the custody ledger API and its identifier rules.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(documentCmd(), transferCmd(opts), ledgerCmd(opts), migrateCmd())
	return rootCmd
}

func documentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "document",
		Short: "National identifier tools",
	}

	var kind string
	validateCmd := &cobra.Command{
		Use:   "validate <identifier>",
		Short: "Validate and format a personal or merchant identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseKind(kind)
			if err != nil {
				return err
			}
			digits, err := document.Normalize(args[0], k)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid %s identifier: %s\n", k, document.Format(digits, k))
			return nil
		},
	}
	validateCmd.Flags().StringVar(&kind, "kind", "holder", "Identifier kind: holder or merchant")

	cmd.AddCommand(validateCmd)
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database schema migrations",
	}

	var databaseURL, path string
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	cmd.PersistentFlags().StringVar(&path, "path", "migrations", "Directory holding the migration files")

	run := func(apply func(string, string, zerolog.Logger) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				return fmt.Errorf("--database-url or DATABASE_URL is required")
			}
			log := logger.NewWithWriter(logger.Config{Level: "info", Format: "console"}, cmd.ErrOrStderr())
			return apply(databaseURL, path, log)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE:  run(migrateUp),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE:  run(migrateDown),
		},
	)
	return cmd
}

func parseKind(s string) (domain.AccountKind, error) {
	switch strings.ToLower(s) {
	case "holder":
		return domain.KindHolder, nil
	case "merchant":
		return domain.KindMerchant, nil
	default:
		return 0, fmt.Errorf("unknown kind %q, want holder or merchant", s)
	}
}

func transferCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Deposits and withdrawals",
	}

	var holderID, merchantID, amount, kind, idempotencyKey string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Process a deposit (D) or withdrawal (S)",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"holder_id":   holderID,
				"merchant_id": merchantID,
				"amount":      amount,
				"kind":        kind,
			}
			headers := map[string]string{}
			if idempotencyKey != "" {
				headers["Idempotency-Key"] = idempotencyKey
			}
			return newClient(opts).do(cmd.OutOrStdout(), http.MethodPost, "/api/v1/transactions", body, headers)
		},
	}
	createCmd.Flags().StringVar(&holderID, "holder", "", "Holder account ID")
	createCmd.Flags().StringVar(&merchantID, "merchant", "", "Merchant account ID")
	createCmd.Flags().StringVar(&amount, "amount", "", "Amount as a decimal string")
	createCmd.Flags().StringVar(&kind, "kind", "D", "D for deposit, S for withdrawal")
	createCmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Optional Idempotency-Key header")
	_ = createCmd.MarkFlagRequired("holder")
	_ = createCmd.MarkFlagRequired("merchant")
	_ = createCmd.MarkFlagRequired("amount")

	var limit, offset int
	var filterHolder, filterMerchant string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("limit", fmt.Sprint(limit))
			q.Set("offset", fmt.Sprint(offset))
			if filterHolder != "" {
				q.Set("holder_id", filterHolder)
			}
			if filterMerchant != "" {
				q.Set("merchant_id", filterMerchant)
			}
			return newClient(opts).do(cmd.OutOrStdout(), http.MethodGet, "/api/v1/transactions?"+q.Encode(), nil, nil)
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", domain.DefaultPageSize, "Page size")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Page offset")
	listCmd.Flags().StringVar(&filterHolder, "holder", "", "Only transactions of this holder")
	listCmd.Flags().StringVar(&filterMerchant, "merchant", "", "Only transactions of this merchant")

	cmd.AddCommand(createCmd, listCmd)
	return cmd
}

func ledgerCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show per-kind totals and balance sums",
		RunE: func(cmd *cobra.Command, args []string) error {
			return newClient(opts).do(cmd.OutOrStdout(), http.MethodGet, "/api/v1/ledger/summary", nil, nil)
		},
	}

	cmd.AddCommand(summaryCmd)
	return cmd
}

type client struct {
	baseURL string
	http    *http.Client
}

func newClient(opts *options) *client {
	return &client{
		baseURL: strings.TrimRight(opts.baseURL, "/"),
		http:    &http.Client{Timeout: opts.timeout},
	}
}

// do sends a request and pretty-prints the JSON response to out.
func (c *client) do(out io.Writer, method, path string, body any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	return printJSON(out, raw)
}

func printJSON(out io.Writer, raw []byte) error {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		_, werr := out.Write(raw)
		return werr
	}
	pretty.WriteByte('\n')
	_, err := out.Write(pretty.Bytes())
	return err
}
