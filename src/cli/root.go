// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/x509-client/src/config"
	"github.com/H0llyW00dzZ/x509-client/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/x509-client/src/logger"
	"github.com/H0llyW00dzZ/x509-client/src/metrics"
	x509certs "github.com/H0llyW00dzZ/x509-client/src/x509/certs"
	x509client "github.com/H0llyW00dzZ/x509-client/src/x509/client"
)

// Output formats.
const (
	FormatPEM   = "pem"
	FormatDER   = "der"
	FormatTable = "table"
	FormatJSON  = "json"
)

var (
	// ErrUnsupportedFormat indicates an unknown --format value.
	ErrUnsupportedFormat = errors.New("cli: unsupported output format")

	// ErrUnsupportedBackend indicates an unknown --backend value.
	ErrUnsupportedBackend = errors.New("cli: unsupported backend")
)

// options holds the parsed command-line flags.
type options struct {
	configPath string
	strict     bool
	allowFile  bool
	maxBytes   int64
	backend    string
	first      bool
	format     string
	output     string
	timeout    time.Duration
	verbose    bool
	metrics    bool
}

// Execute runs the root command with os.Args, handling any errors that occur during execution.
//
// Parameters:
//   - ctx: Context for cancellation of the download
//   - version: Version reported by --version and in the default User-Agent
//   - log: Logger receiving debug output when --verbose is set
//
// Returns:
//   - error: Error if the arguments are invalid or the fetch fails
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return NewCommand(version, log).ExecuteContext(ctx)
}

// NewCommand builds the root command.
func NewCommand(version string, log logger.Logger) *cobra.Command {
	opts := &options{}
	exe := posix.GetExecutableName()

	cmd := &cobra.Command{
		Use:   exe + " [flags] ORIGIN",
		Short: "Fetch X.509 certificates from a URL or file",
		Long: `Fetch X.509 certificates from an http(s) URL, a file:// URL or a local path and
print them. The payload format (single DER certificate, PKCS#7 bundle or PEM
chain) is taken from the file extension or Content-Type and, unless --strict is
set, the other formats are tried when the hinted one does not decode.`,
		Example: fmt.Sprintf(`  %[1]s https://pki.example.com/ca.p7c
  %[1]s --allow-file --format table ./chain.pem
  %[1]s --first --format der -o leaf.der https://pki.example.com/leaf.cer`, exe),
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, version, log, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to configuration file (JSON or YAML)")
	flags.BoolVar(&opts.strict, "strict", false, "decode only the hinted format and refuse unknown formats")
	flags.BoolVar(&opts.allowFile, "allow-file", false, "permit file:// origins and local paths")
	flags.Int64Var(&opts.maxBytes, "max-bytes", 0, "abort downloads larger than this many bytes (0: unlimited)")
	flags.StringVarP(&opts.backend, "backend", "b", config.DefaultBackend, "decoder backend: x509, asn1 or raw")
	flags.BoolVar(&opts.first, "first", false, "output only the first certificate")
	flags.StringVarP(&opts.format, "format", "f", FormatPEM, "output format: pem, der, table or json")
	flags.StringVarP(&opts.output, "output", "o", "", "output to OUTPUT_FILE (default: stdout)")
	flags.DurationVar(&opts.timeout, "timeout", config.DefaultTimeoutSeconds*time.Second, "HTTP request timeout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log each download attempt to stderr")
	flags.BoolVar(&opts.metrics, "metrics", false, "print client metrics to stderr after the fetch")

	return cmd
}

func run(cmd *cobra.Command, opts *options, version string, log logger.Logger, rawOrigin string) error {
	switch opts.format {
	case FormatPEM, FormatDER, FormatTable, FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.format)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	origin, err := x509client.ParseOrigin(rawOrigin)
	if err != nil {
		return err
	}

	if log == nil {
		log = logger.Discard()
	}
	if cli, ok := log.(*logger.CLILogger); ok && opts.verbose {
		cli.SetVerbose(true)
		cli.SetOutput(cmd.ErrOrStderr())
	}

	registry := prometheus.NewRegistry()

	clientConfig := cfg.ClientConfig()
	clientConfig.Version = version
	clientConfig.Logger = log
	clientConfig.Metrics = metrics.NewPrometheus(registry)

	data, err := fetch(cmd.Context(), cfg.Client.Backend, clientConfig, origin, opts)
	if opts.metrics {
		if werr := metrics.WriteText(cmd.ErrOrStderr(), registry); werr != nil {
			return werr
		}
	}
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, data, 0o644); err != nil {
			return fmt.Errorf("error writing to output file: %w", err)
		}
		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// applyFlags copies explicitly set flags over the loaded configuration.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("strict") {
		cfg.Client.Strict = opts.strict
	}
	if flags.Changed("allow-file") {
		cfg.Client.AllowFileScheme = opts.allowFile
	}
	if flags.Changed("max-bytes") {
		cfg.Client.MaxBytes = opts.maxBytes
	}
	if flags.Changed("backend") {
		cfg.Client.Backend = opts.backend
	}
	if flags.Changed("timeout") {
		// Round up so a sub-second timeout does not turn into "no timeout".
		cfg.Client.TimeoutSeconds = int((opts.timeout + time.Second - 1) / time.Second)
	}
}

// fetch runs the client for the selected backend and renders the result.
func fetch(ctx context.Context, backend string, cfg x509client.Config, origin *url.URL, opts *options) ([]byte, error) {
	switch backend {
	case config.BackendX509:
		return fetchAndRender[*x509.Certificate](ctx, x509certs.New(), cfg, origin, opts)
	case config.BackendASN1:
		return fetchAndRender[*x509certs.Structure](ctx, x509certs.NewASN1(), cfg, origin, opts)
	case config.BackendRaw:
		return fetchAndRender[[]byte](ctx, x509certs.Passthrough{}, cfg, origin, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, backend)
	}
}

func fetchAndRender[T any](ctx context.Context, decoder x509certs.Decoder[T], cfg x509client.Config, origin *url.URL, opts *options) ([]byte, error) {
	client, err := x509client.New(decoder, cfg)
	if err != nil {
		return nil, err
	}

	var certs []T
	if opts.first {
		cert, err := client.FetchFirst(ctx, origin)
		if err != nil {
			return nil, err
		}
		certs = []T{cert}
	} else {
		if certs, err = client.FetchAll(ctx, origin); err != nil {
			return nil, err
		}
	}

	return Render(certs, opts.format, origin.String())
}

// Render encodes certificates produced by any backend in the given output format.
//
// Parameters:
//   - certs: Certificates in collection order
//   - format: One of FormatPEM, FormatDER, FormatTable or FormatJSON
//   - origin: Origin reported in JSON output
//
// Returns:
//   - []byte: Encoded output
//   - error: [ErrUnsupportedFormat] or a JSON encoding error
func Render[T any](certs []T, format, origin string) ([]byte, error) {
	switch format {
	case FormatPEM, FormatDER:
		ders := make([][]byte, 0, len(certs))
		for _, c := range certs {
			ders = append(ders, x509certs.DER(c))
		}
		if format == FormatPEM {
			return x509certs.EncodePEMBlocks(ders), nil
		}
		return concat(ders), nil
	case FormatTable:
		return []byte(x509certs.RenderTable(summaries(certs)) + "\n"), nil
	case FormatJSON:
		data, err := x509certs.ToVisualizationJSON(origin, summaries(certs))
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func summaries[T any](certs []T) []x509certs.Summary {
	out := make([]x509certs.Summary, 0, len(certs))
	for _, c := range certs {
		out = append(out, x509certs.Summarize(c))
	}
	return out
}

func concat(parts [][]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
