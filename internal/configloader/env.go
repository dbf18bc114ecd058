package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/codesurf/pkg/config"
)

// envVarPrefix is the prefix for all codesurf environment variables.
const envVarPrefix = "CODESURF_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"SEVERITY_DEFAULT":   {field: "severity_default", typ: envTypeString},
	"FORMAT":             {field: "format", typ: envTypeString},
	"JOBS":               {field: "jobs", typ: envTypeInt},
	"IGNORE":             {field: "ignore", typ: envTypeSlice},
	"ENABLE_RULES":       {field: "enable_rules", typ: envTypeSlice},
	"DISABLE_RULES":      {field: "disable_rules", typ: envTypeSlice},
	"PYTHON_INTERPRETER": {field: "python.interpreter", typ: envTypeString},
	"PYTHON_SCRIPT":      {field: "python.script", typ: envTypeString},
	"PYTHON_TIMEOUT":     {field: "python.timeout_seconds", typ: envTypeInt},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with CODESURF_ (e.g., CODESURF_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		parts := parseSliceValue(value)
		return setSliceField(cfg, mapping.field, parts)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "severity_default":
		cfg.SeverityDefault = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "python.interpreter":
		cfg.Python.Interpreter = value
	case "python.script":
		cfg.Python.Script = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "python.timeout_seconds":
		cfg.Python.TimeoutSeconds = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "enable_rules":
		cfg.EnableRules = value
	case "disable_rules":
		cfg.DisableRules = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"CODESURF_SEVERITY_DEFAULT":   "Default severity: error, warning, or info",
		"CODESURF_FORMAT":             "Output format: text, json, or sarif",
		"CODESURF_JOBS":               "Number of parallel workers (0 = auto)",
		"CODESURF_IGNORE":             "Comma-separated list of ignore patterns",
		"CODESURF_ENABLE_RULES":       "Comma-separated list of rule IDs to enable",
		"CODESURF_DISABLE_RULES":      "Comma-separated list of rule IDs to disable",
		"CODESURF_PYTHON_INTERPRETER": "Python interpreter for the external analyzer",
		"CODESURF_PYTHON_SCRIPT":      "Path to the external analyzer script",
		"CODESURF_PYTHON_TIMEOUT":     "Timeout in seconds for the external analyzer",
	}
}
