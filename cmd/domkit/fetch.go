package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vango-dev/domkit/internal/errors"
	"github.com/vango-dev/domkit/pkg/xhr"
)

func fetchCmd(a *app) *cobra.Command {
	var (
		method    string
		jsonBody  string
		data      string
		headers   []string
		parseJSON bool
		include   bool
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "fetch URL",
		Short: "Issue a request and print the response",
		Long: `Issue an HTTP request and print the response body.

JSON responses, or any response with --parse-json, are decoded and
printed indented. Non-2xx responses print the body and exit non-zero.

Examples:
  domkit fetch https://example.com/api/items
  domkit fetch https://example.com/api/items -X POST --json '{"name":"a"}'
  domkit fetch https://example.com/ -H 'Accept=text/html' --include`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := xhr.Options{
				Method:    strings.ToUpper(method),
				ParseJSON: parseJSON || a.cfg.Request.ParseJSON,
			}
			if data != "" {
				opts.Data = []byte(data)
			}
			if jsonBody != "" {
				var v any
				if err := json.Unmarshal([]byte(jsonBody), &v); err != nil {
					return errors.New("E160").WithDetail("--json must be valid JSON").Wrap(err)
				}
				opts.JSON = v
			}
			h, err := parseHeaderFlags(headers)
			if err != nil {
				return err
			}
			opts.Headers = h

			if !cmd.Flags().Changed("timeout") {
				timeout = a.cfg.RequestTimeout()
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			return runFetch(ctx, cmd.OutOrStdout(), a, args[0], opts, timeout, include)
		},
	}

	cmd.Flags().StringVarP(&method, "method", "X", "GET", "HTTP method")
	cmd.Flags().StringVar(&jsonBody, "json", "", "JSON request body")
	cmd.Flags().StringVar(&data, "data", "", "Raw request body")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Request header as name=value (repeatable)")
	cmd.Flags().BoolVar(&parseJSON, "parse-json", false, "Decode the response as JSON regardless of Content-Type")
	cmd.Flags().BoolVarP(&include, "include", "i", false, "Print status and response headers")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Request timeout (default from domkit.json)")

	return cmd
}

func runFetch(ctx context.Context, w io.Writer, a *app, url string, opts xhr.Options, timeout time.Duration, include bool) error {
	client := xhr.NewClient(
		xhr.WithTransport(xhr.NewHTTPTransport(timeout)),
		xhr.WithLogger(a.logger),
	)

	resp, err := client.Request(ctx, url, nil, opts).Wait(ctx)
	var statusErr *xhr.StatusError
	if err != nil && !stderrors.As(err, &statusErr) {
		return err
	}

	if include {
		fmt.Fprintln(w, color.CyanString("%d", resp.Status))
		names := make([]string, 0, len(resp.Headers))
		for name := range resp.Headers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "%s: %s\n", color.New(color.Bold).Sprint(name), resp.Headers[name])
		}
		fmt.Fprintln(w)
	}

	if err := writeBody(w, resp.Body); err != nil {
		return err
	}
	if statusErr != nil {
		return errors.New("E204").
			WithDetail(fmt.Sprintf("%s returned status %d", url, statusErr.Status)).
			Wrap(statusErr)
	}
	return nil
}

func writeBody(w io.Writer, body any) error {
	if s, ok := body.(string); ok {
		_, err := io.WriteString(w, ensureNewline(s))
		return err
	}
	out, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}

// parseHeaderFlags turns name=value (or name: value) flags into headers.
func parseHeaderFlags(flags []string) (map[string]string, error) {
	out := make(map[string]string, len(flags))
	for _, f := range flags {
		sep := "="
		if i := strings.IndexAny(f, "=:"); i >= 0 {
			sep = f[i : i+1]
		}
		name, value, ok := strings.Cut(f, sep)
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.New("E160").
				WithDetail(fmt.Sprintf("invalid header %q", f)).
				WithSuggestion("Use --header name=value")
		}
		out[name] = strings.TrimSpace(value)
	}
	return out, nil
}
