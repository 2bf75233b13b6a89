package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/imagerefs/internal/codec"
	"github.com/hyperifyio/imagerefs/internal/imageref"
	"github.com/hyperifyio/imagerefs/internal/record"
)

type App struct {
	cfg       Config
	extractor *imageref.Extractor
	inFormat  codec.Format
	outFormat codec.Format

	stdin  io.Reader
	stdout io.Writer
}

// ErrNoInputRecords is returned when the input stream decodes to zero
// records. Zero output records from a non-empty input is not an error.
var ErrNoInputRecords = errors.New("no input records")

func New(ctx context.Context, cfg Config) (*App, error) {
	ApplyDefaults(&cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	inFormat, _ := codec.ParseFormat(cfg.InputFormat)
	if inFormat == "" {
		inFormat = codec.DetectFormat(cfg.InputPath)
	}
	outFormat, _ := codec.ParseFormat(cfg.OutputFormat)
	if outFormat == "" {
		outFormat = codec.DetectFormat(cfg.OutputPath)
	}

	ex := imageref.New()
	ex.Source = record.ParsePath(cfg.SourceField)
	ex.Target = record.ParsePath(cfg.TargetField)
	if p := record.ParsePath(cfg.HTMLSourceField); len(p) > 0 {
		ex.HTMLSource = p
		ex.Converter = imageref.NewHTMLConverter()
	}

	log.Debug().
		Str("source", ex.Source.String()).
		Str("target", ex.Target.String()).
		Str("html_source", ex.HTMLSource.String()).
		Str("in_format", string(inFormat)).
		Str("out_format", string(outFormat)).
		Msg("extractor configured")

	return &App{
		cfg:       cfg,
		extractor: ex,
		inFormat:  inFormat,
		outFormat: outFormat,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}, nil
}

func (a *App) Close() {
	// nothing yet
}

func (a *App) Run(ctx context.Context) error {
	records, err := a.readInput()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return ErrNoInputRecords
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	out, st := a.extractor.ExtractWithStats(records)
	log.Info().
		Int("records", st.Records).
		Int("without_text", st.WithoutText).
		Int("with_images", st.WithImages).
		Int("references", st.References).
		Int("skipped", st.Skipped).
		Msg("extracted image references")

	if a.cfg.DryRun {
		for _, r := range a.extractor.References(records) {
			log.Info().Int("record", r.Record).Str("image", r.Name).Msg("image reference")
		}
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := a.writeOutput(out); err != nil {
		return err
	}
	return a.writeSummaries(records)
}

func (a *App) readInput() ([]record.Record, error) {
	var r io.Reader = a.stdin
	if a.cfg.InputPath != "-" {
		f, err := os.Open(a.cfg.InputPath)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	records, err := codec.Decode(r, a.inFormat, a.cfg.InputCharset)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	log.Debug().Int("records", len(records)).Str("in", a.cfg.InputPath).Msg("read input")
	return records, nil
}

func (a *App) writeOutput(out []record.Record) error {
	var buf bytes.Buffer
	if err := codec.Encode(&buf, a.outFormat, out, codec.Options{Indent: a.cfg.Indent}); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if a.cfg.OutputPath == "-" {
		if _, err := a.stdout.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(a.cfg.OutputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info().Str("out", a.cfg.OutputPath).Int("records", len(out)).Msg("wrote output")
	return nil
}

func (a *App) writeSummaries(records []record.Record) error {
	mdPath := strings.TrimSpace(a.cfg.SummaryPath)
	pdfPath := strings.TrimSpace(a.cfg.SummaryPDFPath)
	if mdPath == "" && pdfPath == "" {
		return nil
	}
	summary := buildSummaryMarkdown(len(records), a.extractor.References(records))
	if mdPath != "" {
		if err := os.WriteFile(mdPath, []byte(summary), 0o644); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		log.Info().Str("out", mdPath).Msg("wrote summary")
	}
	if pdfPath != "" {
		if err := writeSummaryPDF(summary, pdfPath); err != nil {
			return fmt.Errorf("write summary pdf: %w", err)
		}
		log.Info().Str("out", pdfPath).Msg("wrote summary pdf")
	}
	return nil
}
