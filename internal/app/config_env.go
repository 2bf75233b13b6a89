package app

import (
    "os"
    "strings"
)

// envKeys maps each string setting to its environment variable.
func envKeys(cfg *Config) map[string]*string {
    return map[string]*string{
        "IMAGEREFS_INPUT":         &cfg.InputPath,
        "IMAGEREFS_OUTPUT":        &cfg.OutputPath,
        "IMAGEREFS_INPUT_FORMAT":  &cfg.InputFormat,
        "IMAGEREFS_OUTPUT_FORMAT": &cfg.OutputFormat,
        "IMAGEREFS_INPUT_CHARSET": &cfg.InputCharset,
        "IMAGEREFS_INDENT":        &cfg.Indent,
        "IMAGEREFS_SOURCE":        &cfg.SourceField,
        "IMAGEREFS_TARGET":        &cfg.TargetField,
        "IMAGEREFS_HTML_SOURCE":   &cfg.HTMLSourceField,
        "IMAGEREFS_SUMMARY":       &cfg.SummaryPath,
        "IMAGEREFS_SUMMARY_PDF":   &cfg.SummaryPDFPath,
    }
}

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
    if cfg == nil { return }

    for key, dst := range envKeys(cfg) {
        if *dst == "" {
            *dst = os.Getenv(key)
        }
    }

    // Booleans
    setBool := func(dst *bool, envKey string) {
        if *dst { return }
        if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
            if s == "1" || s == "true" || s == "yes" || s == "on" {
                *dst = true
            }
        }
    }
    setBool(&cfg.DryRun, "IMAGEREFS_DRY_RUN")
    setBool(&cfg.Verbose, "IMAGEREFS_VERBOSE")
}
