package app

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"

    yaml "gopkg.in/yaml.v3"

    "github.com/hyperifyio/imagerefs/internal/codec"
    "github.com/hyperifyio/imagerefs/internal/imageref"
    "github.com/hyperifyio/imagerefs/internal/record"
)

// FileConfig represents the single-file configuration schema.
// Nested sections map naturally to the dotted flag names.
type FileConfig struct {
    Input struct {
        Path    string `yaml:"path" json:"path"`
        Format  string `yaml:"format" json:"format"`
        Charset string `yaml:"charset" json:"charset"`
    } `yaml:"input" json:"input"`

    Output struct {
        Path   string `yaml:"path" json:"path"`
        Format string `yaml:"format" json:"format"`
        Indent string `yaml:"indent" json:"indent"`
    } `yaml:"output" json:"output"`

    Fields struct {
        Source     string `yaml:"source" json:"source"`
        Target     string `yaml:"target" json:"target"`
        HTMLSource string `yaml:"htmlSource" json:"htmlSource"`
    } `yaml:"fields" json:"fields"`

    Summary struct {
        Path string `yaml:"path" json:"path"`
        PDF  string `yaml:"pdf" json:"pdf"`
    } `yaml:"summary" json:"summary"`

    DryRun  bool `yaml:"dryRun" json:"dryRun"`
    Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
    var fc FileConfig
    b, err := os.ReadFile(path)
    if err != nil {
        return fc, err
    }
    switch ext := filepath.Ext(path); ext {
    case ".yaml", ".yml":
        if err := yaml.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse yaml: %w", err)
        }
    case ".json":
        if err := json.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse json: %w", err)
        }
    default:
        // Try YAML then JSON
        if err := yaml.Unmarshal(b, &fc); err != nil {
            if jerr := json.Unmarshal(b, &fc); jerr != nil {
                return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
            }
        }
    }
    return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are still unset. Flags and env should already have been applied.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
    if cfg == nil { return }

    if cfg.InputPath == "" { cfg.InputPath = fc.Input.Path }
    if cfg.InputFormat == "" { cfg.InputFormat = fc.Input.Format }
    if cfg.InputCharset == "" { cfg.InputCharset = fc.Input.Charset }

    if cfg.OutputPath == "" { cfg.OutputPath = fc.Output.Path }
    if cfg.OutputFormat == "" { cfg.OutputFormat = fc.Output.Format }
    if cfg.Indent == "" { cfg.Indent = fc.Output.Indent }

    if cfg.SourceField == "" { cfg.SourceField = fc.Fields.Source }
    if cfg.TargetField == "" { cfg.TargetField = fc.Fields.Target }
    if cfg.HTMLSourceField == "" { cfg.HTMLSourceField = fc.Fields.HTMLSource }

    if cfg.SummaryPath == "" { cfg.SummaryPath = fc.Summary.Path }
    if cfg.SummaryPDFPath == "" { cfg.SummaryPDFPath = fc.Summary.PDF }

    if !cfg.DryRun && fc.DryRun { cfg.DryRun = true }
    if !cfg.Verbose && fc.Verbose { cfg.Verbose = true }
}

// ApplyDefaults fills whatever flags, env and file config left unset.
// Stdio ("-") is the default for both streams.
func ApplyDefaults(cfg *Config) {
    if cfg == nil { return }
    if strings.TrimSpace(cfg.InputPath) == "" { cfg.InputPath = "-" }
    if strings.TrimSpace(cfg.OutputPath) == "" { cfg.OutputPath = "-" }
    if strings.TrimSpace(cfg.SourceField) == "" { cfg.SourceField = imageref.DefaultSource }
    if strings.TrimSpace(cfg.TargetField) == "" { cfg.TargetField = imageref.DefaultTarget }
}

// ValidateConfig checks settings that would otherwise fail mid-run.
func ValidateConfig(cfg Config) error {
    if strings.TrimSpace(cfg.InputPath) == "" {
        return errors.New("config: input path is required")
    }
    if !cfg.DryRun && strings.TrimSpace(cfg.OutputPath) == "" {
        return errors.New("config: output path is required")
    }
    if len(record.ParsePath(cfg.SourceField)) == 0 {
        return errors.New("config: source field is required")
    }
    if len(record.ParsePath(cfg.TargetField)) == 0 {
        return errors.New("config: target field is required")
    }
    if _, err := codec.ParseFormat(cfg.InputFormat); err != nil {
        return fmt.Errorf("config: input format: %w", err)
    }
    if _, err := codec.ParseFormat(cfg.OutputFormat); err != nil {
        return fmt.Errorf("config: output format: %w", err)
    }
    return nil
}
