package workflow

import "fmt"

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is one machine-readable issue found during conversion.
// ToolID is empty for document-level issues.
type Diagnostic struct {
	Severity Severity
	ToolID   string
	Message  string
}

func (d Diagnostic) String() string {
	if d.ToolID != "" {
		return fmt.Sprintf("%s: tool %s: %s", d.Severity, d.ToolID, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Warnf builds a warning diagnostic.
func Warnf(toolID, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: SeverityWarning,
		ToolID:   toolID,
		Message:  fmt.Sprintf(format, args...),
	}
}
