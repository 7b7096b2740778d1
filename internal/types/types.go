package types

import (
	"fmt"
	"go/token"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stylekit/jsstyle/internal/fix"
)

// Severity is how a rule violation is reported.
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
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	case SeverityOff:
		return "OFF"
	}
	return "UNKNOWN"
}

// ParseSeverity accepts the names used in configuration files.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	case "off":
		return SeverityOff, nil
	}
	return SeverityError, fmt.Errorf("unknown severity %q", s)
}

func (s Severity) MarshalYAML() (any, error) {
	return strings.ToLower(s.String()), nil
}

func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ConfigRule is the configuration of one rule: its severity and raw options.
type ConfigRule struct {
	Severity Severity       `yaml:"severity"`
	Options  map[string]any `yaml:"options,omitempty"`
}

// Issue represents a lint issue found in the code base.
type Issue struct {
	Rule     string
	Category string
	Filename string
	Message  string
	// Suggestion holds the affected lines as they read once Fix is applied.
	Suggestion string
	Note       string
	Start      token.Position
	End        token.Position
	Severity   Severity
	Fix        *fix.Edit `json:",omitempty"`
}

// Fixable reports whether the issue carries an automatic correction.
func (i Issue) Fixable() bool {
	return i.Fix != nil
}
