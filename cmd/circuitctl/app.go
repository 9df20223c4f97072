package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/mcsa-hvr/circuit1021/config"
	"github.com/mcsa-hvr/circuit1021/internal/adapters/filestore"
	"github.com/mcsa-hvr/circuit1021/internal/bootstrap"
	domainauth "github.com/mcsa-hvr/circuit1021/internal/domain/auth"
	"github.com/mcsa-hvr/circuit1021/internal/service"
)

const (
	envAPIURL      = "CIRCUIT_API_URL"
	outputTable    = "table"
	outputJSON     = "json"
	defaultTimeout = 30 * time.Second
)

var errNotLoggedIn = errors.New("not logged in; run `circuitctl login` first")

// app carries flags and the workspace opened for one invocation.
type app struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	apiURL      string
	credentials string
	output      string
	verbose     bool
	timeout     time.Duration

	now    func() time.Time
	logger *slog.Logger
	tokens *filestore.TokenFile
	ws     *service.Workspace
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
		now:    time.Now,
	}
}

func defaultAPIURL() string {
	if v := strings.TrimSpace(os.Getenv(envAPIURL)); v != "" {
		return v
	}
	return config.DefaultAPIBaseURL
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "circuitctl",
		Short:         "Manage Circuit 1021 members, finances, announcements and files",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.apiURL, "api-url", defaultAPIURL(), "backend API base URL (env "+envAPIURL+")")
	flags.StringVar(&a.credentials, "credentials", "", "credentials file (default <user config dir>/circuit1021/credentials.yaml)")
	flags.StringVarP(&a.output, "output", "o", outputTable, "output format: table or json")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log requests to stderr")
	flags.DurationVar(&a.timeout, "timeout", defaultTimeout, "per-request timeout")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newRegisterCmd(a),
		newStatsCmd(a),
		newMembersCmd(a),
		newFinancesCmd(a),
		newAnnouncementsCmd(a),
		newFilesCmd(a),
	)
	return root
}

// open builds the logger and the workspace backed by the credentials file.
func (a *app) open() error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	if a.output != outputTable && a.output != outputJSON {
		return fmt.Errorf("unknown output format %q (valid options: table, json)", a.output)
	}

	path := a.credentials
	if path == "" {
		p, err := filestore.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	apiCfg := config.APIConfig{BaseURL: a.apiURL, Timeout: a.timeout}
	apiCfg.Sanitize()
	factory, err := bootstrap.NewWorkspaceFactory(apiCfg, nil, a.logger)
	if err != nil {
		return err
	}
	a.tokens = filestore.NewTokenFile(path, apiCfg.BaseURL)
	a.ws = factory.Open(a.tokens)
	a.logger.Debug("workspace opened", "api_url", apiCfg.BaseURL, "credentials", path)
	return nil
}

// requireLogin resolves the stored token and fails unless it is still accepted.
func (a *app) requireLogin(ctx context.Context) (*domainauth.UserProfile, error) {
	sess := a.ws.Session.Resolve(ctx)
	if sess.State() != domainauth.StateAuthenticated {
		return nil, errNotLoggedIn
	}
	return sess.User, nil
}

// prompt writes label to stderr and reads one line from stdin.
func (a *app) prompt(label string) (string, error) {
	if err := writef(a.errOut, "%s", label); err != nil {
		return "", err
	}
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.TrimSpace(label), ":"), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// report prints a submit outcome; failures list field errors and return an error.
func (a *app) report(res service.SubmitResult) error {
	if res.Success {
		return writeln(a.out, res.Message)
	}
	fields := make([]string, 0, len(res.FieldErrors))
	for field := range res.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if err := writef(a.errOut, "  %s: %s\n", field, res.FieldErrors[field]); err != nil {
			return err
		}
	}
	return errors.New(res.Message)
}

func (a *app) jsonOutput() bool { return a.output == outputJSON }

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}

func orDash(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "-"
	}
	return *s
}
