package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostic is one finding about a mapping record.
type Diagnostic struct {
	Severity Severity
	// Code is a stable identifier such as "unknown_transform".
	Code    string
	Message string
	// Location names the record, e.g. "mappings[2].itemMappings[0]".
	Location string
	// Path is the path text the finding is about, if any.
	Path        string
	Suggestions []string
	// Cause is the typed error behind an error diagnostic.
	Cause error
}

// String renders d as "location (path): [code] message (did you mean x?)",
// leaving out the parts that are empty.
func (d Diagnostic) String() string {
	var b strings.Builder

	if d.Location != "" {
		b.WriteString(d.Location)
	}

	if d.Path != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		fmt.Fprintf(&b, "(%s)", d.Path)
	}

	if b.Len() > 0 {
		b.WriteString(": ")
	}

	if d.Code != "" {
		fmt.Fprintf(&b, "[%s] ", d.Code)
	}

	b.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	return b.String()
}

// Diagnostics collects the findings of one compilation, grouped by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// AddError records an error. The message is taken from cause when given.
func (d *Diagnostics) AddError(code, location, path string, cause error, suggestions ...string) {
	msg := code
	if cause != nil {
		msg = cause.Error()
	}

	d.add(Diagnostic{
		Severity:    SeverityError,
		Code:        code,
		Message:     msg,
		Location:    location,
		Path:        path,
		Suggestions: suggestions,
		Cause:       cause,
	})
}

// AddWarning records a finding that does not stop compilation.
func (d *Diagnostics) AddWarning(code, message, location, path string) {
	d.add(Diagnostic{Severity: SeverityWarning, Code: code, Message: message, Location: location, Path: path})
}

// AddInfo records a note, such as an implicit default being applied.
func (d *Diagnostics) AddInfo(code, message, location, path string) {
	d.add(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, Location: location, Path: path})
}

func (d *Diagnostics) add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// HasErrors reports whether any error was recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid is the negation of HasErrors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Err joins the errors into one, or returns nil when there are none. Each
// joined error prints its location and unwraps to its cause, so errors.Is
// and errors.As reach the typed errors behind the diagnostics.
func (d *Diagnostics) Err() error {
	if d.IsValid() {
		return nil
	}

	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, &located{diag: e})
	}

	return errors.Join(errs...)
}

type located struct {
	diag Diagnostic
}

func (l *located) Error() string { return l.diag.String() }

func (l *located) Unwrap() error { return l.diag.Cause }
