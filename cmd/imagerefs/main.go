package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/imagerefs/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		inputPath      string
		outputPath     string
		inputFormat    string
		outputFormat   string
		inputCharset   string
		indent         string
		sourceField    string
		targetField    string
		htmlSource     string
		summaryPath    string
		summaryPDFPath string
		configPath     string
		envFile        string
		dryRun         bool
		verbose        bool
		showVersion    bool
	)

	flag.StringVar(&inputPath, "input", "", "Path to input records, '-' for stdin (default '-')")
	flag.StringVar(&outputPath, "output", "", "Path to write output records, '-' for stdout (default '-')")
	flag.StringVar(&inputFormat, "input.format", "", "Input format: json, ndjson or yaml (default from extension)")
	flag.StringVar(&outputFormat, "output.format", "", "Output format: json, ndjson or yaml (default from extension)")
	flag.StringVar(&inputCharset, "input.charset", "", "Input character set, e.g. 'latin1' or 'utf-16le' (default UTF-8)")
	flag.StringVar(&indent, "indent", "", "Indent string for JSON output, e.g. '  '")
	flag.StringVar(&sourceField, "source", "", "Dotted path of the Markdown body (default 'document.md_content')")
	flag.StringVar(&targetField, "target", "", "Dotted path of the added image attribute (default 'imageName')")
	flag.StringVar(&htmlSource, "html.source", "", "Dotted path of an HTML body scanned when the Markdown body is absent")
	flag.StringVar(&summaryPath, "summary", "", "Optional path for a Markdown summary of the references")
	flag.StringVar(&summaryPDFPath, "summary.pdf", "", "Optional path for a PDF rendering of the summary")
	flag.StringVar(&configPath, "config", "", "Optional YAML or JSON config file (default $IMAGEREFS_CONFIG)")
	flag.StringVar(&envFile, "env", ".env", "Dotenv file loaded before reading the environment")
	flag.BoolVar(&dryRun, "dry-run", false, "Scan and log references without writing output")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(app.VersionString())
		return
	}

	if err := app.LoadEnvFiles(envFile); err != nil {
		log.Error().Err(err).Str("file", envFile).Msg("load env file failed")
		os.Exit(1)
	}

	configPath = resolveConfigPath(configPath)

	cfg := app.Config{
		InputPath:       inputPath,
		OutputPath:      outputPath,
		InputFormat:     inputFormat,
		OutputFormat:    outputFormat,
		InputCharset:    inputCharset,
		Indent:          indent,
		SourceField:     sourceField,
		TargetField:     targetField,
		HTMLSourceField: htmlSource,
		SummaryPath:     summaryPath,
		SummaryPDFPath:  summaryPDFPath,
		DryRun:          dryRun,
		Verbose:         verbose,
	}
	// Precedence: flags, then env, then config file
	app.ApplyEnvToConfig(&cfg)
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("file", configPath).Msg("load config failed")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(exitCode(err))
	}
}

// resolveConfigPath falls back to IMAGEREFS_CONFIG when -config is not set.
// Call it after the dotenv files are loaded so .env can name the file.
func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("IMAGEREFS_CONFIG")
}

// exitCode maps run errors to the process exit status: 2 when the input held
// no records at all, 1 for every other failure.
func exitCode(err error) int {
	if errors.Is(err, app.ErrNoInputRecords) {
		return 2
	}
	return 1
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
