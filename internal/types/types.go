package types

import (
	"fmt"
	"strings"

	"github.com/jslang/jslin/internal/ast"
)

// Issue represents a lint issue found in the code base.
type Issue struct {
	Rule       string
	Category   string
	Filename   string
	Message    string
	Suggestion string
	Note       string
	Start      ast.Position
	End        ast.Position
	Severity   Severity
}

// Severity is the reporting level of a rule.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityOff:
		return "off"
	default:
		return "unknown"
	}
}

// UnmarshalYAML accepts the severity names used in .jslin.yaml.
// A bare `off` is a YAML boolean, so that spelling is handled too.
func (s *Severity) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		var b bool
		if boolErr := unmarshal(&b); boolErr == nil && !b {
			*s = SeverityOff
			return nil
		}
		return err
	}
	switch strings.ToLower(raw) {
	case "error":
		*s = SeverityError
	case "warning", "warn":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	case "off":
		*s = SeverityOff
	default:
		return fmt.Errorf("unknown severity %q", raw)
	}
	return nil
}

// Config is the parsed configuration file.
type Config struct {
	Rules map[string]ConfigRule `yaml:"rules"`
}

// ConfigRule is the per-rule configuration section.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}
