// Package main provides a CLI command for summarizing a file, a URL or stdin.
// Usage: ytldr-summarize [-file PATH | -url URL] [-type T] [-length L] [-format F] [-focus F] [-forensic] [-output text|json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"ytldr/internal/config"
	"ytldr/internal/domain/entity"
	"ytldr/internal/infra/completion"
	"ytldr/internal/infra/extractor"
	"ytldr/internal/observability/logging"
	"ytldr/internal/usecase/summarize"
	"ytldr/internal/utils/text"
)

// maxStdinBytes bounds content read from stdin or a file.
const maxStdinBytes = 64 << 20

func main() {
	var (
		filePath     string
		pageURL      string
		contentType  string
		length       string
		format       string
		focus        string
		forensic     bool
		withMetadata bool
		outputFormat string
		timeout      time.Duration
	)

	flag.StringVar(&filePath, "file", "", "Path of a file to summarize (text, markdown, HTML or PDF)")
	flag.StringVar(&pageURL, "url", "", "URL of an article to fetch and summarize")
	flag.StringVar(&contentType, "type", "auto", "Content type, or auto to detect")
	flag.StringVar(&length, "length", string(entity.LengthMedium), "Summary length: short, medium, long or detailed")
	flag.StringVar(&format, "format", string(entity.FormatMarkdown), "Summary format: markdown, bullet or paragraph")
	flag.StringVar(&focus, "focus", string(entity.FocusGeneral), "Summary focus: general, key-points, analysis, executive or forensic")
	flag.BoolVar(&forensic, "forensic", false, "Produce a forensic report instead of a summary")
	flag.BoolVar(&withMetadata, "metadata", false, "Fetch page metadata for the forensic report header (requires -url)")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.DurationVar(&timeout, "timeout", 10*time.Minute, "Overall deadline")
	flag.Parse()

	if filePath != "" && pageURL != "" {
		usageError("-file and -url are mutually exclusive")
	}
	if outputFormat != "text" && outputFormat != "json" {
		usageError(fmt.Sprintf("invalid output format '%s' (must be 'text' or 'json')", outputFormat))
	}

	logger := initLogger()

	cfg, err := config.LoadEngineConfig()
	if err != nil {
		fail(logger, "failed to load engine configuration", err)
	}

	in, err := buildInput(filePath, pageURL, os.Stdin)
	if err != nil {
		fail(logger, "failed to read input", err)
	}
	in.Type = entity.ContentType(contentType)
	in.Options = entity.SummaryOptions{
		Length: entity.Length(length),
		Format: entity.Format(format),
		Focus:  entity.Focus(focus),
	}
	in.Forensic = forensic
	in.IncludeMetadata = withMetadata

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	engine, err := newEngine(ctx, cfg, logger)
	if err != nil {
		fail(logger, "failed to create summarization engine", err)
	}

	if summarize.IsForensic(in) {
		res, err := engine.SummarizeForensic(ctx, in)
		if err != nil {
			fail(logger, "forensic analysis failed", err)
		}
		emit(outputFormat, res, res.SummaryText)
		return
	}

	res, err := engine.Summarize(ctx, in)
	if err != nil {
		fail(logger, "summarize failed", err)
	}
	emit(outputFormat, res, res.SummaryText)
}

// newEngine wires the configured provider, extractors and token counter.
func newEngine(ctx context.Context, cfg *config.EngineConfig, logger *slog.Logger) (*summarize.Engine, error) {
	extractCfg, err := extractor.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	fetcher := extractor.NewFetcher(extractCfg)

	svc, err := completion.New(ctx, cfg.Completion())
	if err != nil {
		return nil, err
	}
	logger.Debug("completion provider selected", slog.String("provider", svc.Name()))

	opts := []summarize.Option{
		summarize.WithExtractor(extractor.NewRegistry(fetcher)),
		summarize.WithMetadataFetcher(extractor.NewMetadataFetcher(fetcher)),
	}
	if tc, err := text.NewTiktokenCounter("cl100k_base"); err == nil {
		opts = append(opts, summarize.WithTokenCounter(tc))
	} else {
		logger.Debug("tiktoken unavailable, using heuristic token estimates", slog.Any("error", err))
	}
	return summarize.NewEngine(svc, cfg.Summarize(), opts...)
}

// buildInput reads the content unit from a file, a URL or stdin.
func buildInput(filePath, pageURL string, stdin io.Reader) (entity.SummarizeInput, error) {
	var in entity.SummarizeInput
	switch {
	case pageURL != "":
		in.Content = entity.ContentUnit{Text: pageURL, SourceRef: pageURL}
	case filePath != "":
		// #nosec G304 -- path comes from the command line
		data, err := os.ReadFile(filePath)
		if err != nil {
			return in, err
		}
		if len(data) > maxStdinBytes {
			return in, fmt.Errorf("file exceeds %d bytes", maxStdinBytes)
		}
		in.Content = entity.ContentUnit{Raw: data, FileName: filepath.Base(filePath), SourceRef: filePath}
	default:
		data, err := io.ReadAll(io.LimitReader(stdin, maxStdinBytes+1))
		if err != nil {
			return in, err
		}
		if len(data) > maxStdinBytes {
			return in, fmt.Errorf("stdin exceeds %d bytes", maxStdinBytes)
		}
		in.Content = entity.ContentUnit{Text: string(data)}
	}
	return in, nil
}

// emit prints the summary text, or the whole result as indented JSON.
func emit(outputFormat string, result any, summaryText string) {
	if outputFormat != "json" {
		fmt.Println(summaryText)
		return
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to encode JSON: %v\n", err)
		os.Exit(1)
	}
}

func usageError(msg string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n\n", msg)
	fmt.Fprintln(os.Stderr, "Usage: ytldr-summarize [-file PATH | -url URL] [-type T] [-length L] [-format F] [-focus F] [-forensic] [-output text|json]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  ytldr-summarize -file notes.md -length short")
	fmt.Fprintln(os.Stderr, "  ytldr-summarize -url https://example.com/post -format bullet")
	fmt.Fprintln(os.Stderr, "  cat transcript.txt | ytldr-summarize -type youtube -forensic")
	os.Exit(2)
}

func fail(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.Any("error", err))
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}

// initLogger logs to stderr so stdout carries only the summary. Warnings and
// errors only, unless LOG_LEVEL says otherwise.
func initLogger() *slog.Logger {
	level := slog.LevelWarn
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level = logging.ParseLevel(v)
	}
	logger := logging.New(os.Stderr, logging.FormatText, level)
	slog.SetDefault(logger)
	return logger
}
