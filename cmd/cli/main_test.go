package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestDocumentValidate(t *testing.T) {
	out, err := execute(t, "document", "validate", "12345678909")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "123.456.789-09") {
		t.Fatalf("expected formatted identifier, got %q", out)
	}

	out, err = execute(t, "document", "validate", "--kind", "merchant", "11.222.333/0001-81")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "valid merchant identifier: 11.222.333/0001-81") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDocumentValidateRejectsBadChecksum(t *testing.T) {
	if _, err := execute(t, "document", "validate", "12345678900"); err == nil {
		t.Fatalf("expected checksum failure")
	}
	if _, err := execute(t, "document", "validate", "--kind", "bank", "12345678909"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestTransferCreateSendsRequest(t *testing.T) {
	var got map[string]string
	var key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/transactions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		key = r.Header.Get("Idempotency-Key")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"t1","kind":"D"}`))
	}))
	defer srv.Close()

	out, err := execute(t, "--url", srv.URL, "transfer", "create",
		"--holder", "h1", "--merchant", "m1", "--amount", "10.50", "--idempotency-key", "k1")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if got["holder_id"] != "h1" || got["amount"] != "10.50" || got["kind"] != "D" {
		t.Fatalf("unexpected body %v", got)
	}
	if key != "k1" {
		t.Fatalf("expected idempotency key k1, got %q", key)
	}
	if out != "{\n  \"id\": \"t1\",\n  \"kind\": \"D\"\n}\n" {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestTransferListPassesFilters(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"items":[],"limit":5,"offset":0}`))
	}))
	defer srv.Close()

	if _, err := execute(t, "--url", srv.URL, "transfer", "list", "--holder", "h1", "--limit", "5"); err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(query, "holder_id=h1") || !strings.Contains(query, "limit=5") {
		t.Fatalf("unexpected query %q", query)
	}
}

func TestLedgerSummaryReportsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"failed to build ledger summary"}`))
	}))
	defer srv.Close()

	_, err := execute(t, "--url", srv.URL, "ledger", "summary")
	if err == nil || !strings.Contains(err.Error(), "status 503") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestPrintJSONPassesThroughInvalidJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, []byte("not json")); err != nil {
		t.Fatalf("printJSON failed: %v", err)
	}
	if buf.String() != "not json" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestMigrateDownRollsBackWithFlags(t *testing.T) {
	var gotURL, gotPath string
	origDown := migrateDown
	migrateDown = func(databaseURL, path string, log zerolog.Logger) error {
		gotURL, gotPath = databaseURL, path
		log.Info().Msg("rolled back")
		return nil
	}
	t.Cleanup(func() { migrateDown = origDown })

	out, err := execute(t, "migrate", "down", "--database-url", "postgres://localhost/ledger", "--path", "db/migrations")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if gotURL != "postgres://localhost/ledger" || gotPath != "db/migrations" {
		t.Fatalf("unexpected arguments %q %q", gotURL, gotPath)
	}
	if !strings.Contains(out, "rolled back") {
		t.Fatalf("expected migration log on stderr, got %q", out)
	}
}

func TestMigrateRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	called := false
	origUp := migrateUp
	migrateUp = func(string, string, zerolog.Logger) error {
		called = true
		return nil
	}
	t.Cleanup(func() { migrateUp = origUp })

	if _, err := execute(t, "migrate", "up"); err == nil {
		t.Fatalf("expected missing database URL error")
	}
	if called {
		t.Fatalf("migrations must not run without a database URL")
	}
}
