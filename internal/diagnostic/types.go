package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"cube-generator/internal/analyze"
	"cube-generator/internal/common"
	"cube-generator/record"
)

// Diagnostic codes.
const (
	CodeNotARecord    = "not_a_record"
	CodeEmptyRecord   = "empty_record"
	CodeArityTooLarge = "arity_too_large"
	CodeInvalidArity  = "invalid_arity"
	CodeTypeNotFound  = "type_not_found"
	CodeAmbiguousType = "ambiguous_type"
	CodeNotComparable = "not_comparable"
	CodeOther         = "error"
)

// Diagnostics holds all diagnostic information from one generation run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// TypeName identifies which record type this relates to (if any).
	TypeName string
	// FieldName identifies which field this relates to (if any).
	FieldName string
	// Err is the underlying error for error diagnostics.
	Err error
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticWarning DiagnosticSeverity = iota
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Classify maps an introspection error to its diagnostic code.
func Classify(err error) string {
	switch {
	case errors.Is(err, record.ErrNotARecordType):
		return CodeNotARecord
	case errors.Is(err, record.ErrEmptyRecord):
		return CodeEmptyRecord
	case errors.Is(err, record.ErrArityTooLarge):
		return CodeArityTooLarge
	case errors.Is(err, record.ErrInvalidArity):
		return CodeInvalidArity
	case errors.Is(err, analyze.ErrTypeNotFound):
		return CodeTypeNotFound
	case errors.Is(err, analyze.ErrAmbiguousType):
		return CodeAmbiguousType
	default:
		return CodeOther
	}
}

// AddError records err against typeName.
func (d *Diagnostics) AddError(typeName string, err error) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     Classify(err),
		Message:  err.Error(),
		TypeName: typeName,
		Err:      err,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName, fieldName string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:  DiagnosticWarning,
		Code:      code,
		Message:   message,
		TypeName:  typeName,
		FieldName: fieldName,
	})
}

// CheckRecord adds warnings for record properties that do not block
// generation but limit how the variants can be used.
func (d *Diagnostics) CheckRecord(r *analyze.Record) {
	name := r.ID.String()

	for _, f := range r.Fields {
		if !f.Comparable() {
			d.AddWarning(CodeNotComparable,
				"field type is not comparable, the variant type cannot be used as a map key",
				name, f.Name)
		}
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// Error returns all error diagnostics combined, or nil. The result matches
// every collected cause with errors.Is.
func (d *Diagnostics) Error() error {
	var err error
	for _, e := range d.Errors {
		err = multierr.Append(err, e.Err)
	}

	return err
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.TypeName != "" {
		prefix = append(prefix, "["+d.TypeName+"]")
	}

	if d.FieldName != "" {
		prefix = append(prefix, d.FieldName)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
