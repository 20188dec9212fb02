package domain

import (
	"errors"
	"fmt"
)

// ErrOracleUnavailable means the oracle cannot run in this environment.
// It is a degraded-capability state, never a fixture failure.
var ErrOracleUnavailable = errors.New("oracle unavailable")

// SyntaxDiagnostic describes why a fixture is not well-formed XML.
type SyntaxDiagnostic struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

func (d *SyntaxDiagnostic) Error() string {
	if d.Line <= 0 {
		return d.Message
	}
	return fmt.Sprintf("line %d, column %d: %s", d.Line, d.Column, d.Message)
}

// OracleRejection is a domain-level parse failure reported by an oracle
// for a well-formed document.
type OracleRejection struct {
	Oracle  string
	Message string
}

func (e *OracleRejection) Error() string {
	return e.Message
}

// Reject builds an OracleRejection with a formatted message.
func Reject(oracle, format string, args ...any) error {
	return &OracleRejection{Oracle: oracle, Message: fmt.Sprintf(format, args...)}
}
