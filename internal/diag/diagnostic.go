package diag

import (
	"argot/internal/argv"
)

type Note struct {
	Span argv.Span
	Msg  string
}

// Diagnostic is the central record produced by every phase.
// Targets holds the canonical identities of the spec entries involved,
// in the order they were declared by the constraint or matched by the
// binder. Token carries the offending raw argv text where one exists.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  argv.Span
	Token    string
	Targets  []string
	Notes    []Note
}

func New(sev Severity, code Code, primary argv.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary argv.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp argv.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithToken(tok string) Diagnostic {
	d.Token = tok
	return d
}

func (d Diagnostic) WithTargets(targets ...string) Diagnostic {
	d.Targets = append(d.Targets, targets...)
	return d
}
