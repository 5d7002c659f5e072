package mock

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// Kind classifies a Diagnostic.
type Kind int

const (
	// KindCallCount reports a different number of expected and recorded calls.
	KindCallCount Kind = iota

	// KindNotCalled reports an expected call that was never recorded.
	KindNotCalled

	// KindUnexpectedCall reports a recorded call with no matching expectation.
	KindUnexpectedCall

	// KindInstance reports a call against the wrong object instance.
	KindInstance

	// KindArgCount reports a call with the wrong number of arguments.
	KindArgCount

	// KindNullArgument reports a NULL value for an argument expected to be non-NULL.
	KindNullArgument

	// KindNullPointer reports a NULL pointer to pointer.
	KindNullPointer

	// KindNoContents reports a pointer whose contents could not be captured.
	KindNoContents

	// KindContents reports pointer contents that did not match.
	KindContents

	// KindSavedValue reports a value that differs from the saved argument.
	KindSavedValue

	// KindSavedUnset reports a saved argument that was never saved.
	KindSavedUnset

	// KindSavedUnknown reports a saved argument ID that was never declared.
	KindSavedUnknown

	// KindArgument reports an argument that differs from the expected value.
	KindArgument
)

var kindNames = [...]string{
	KindCallCount:      "call_count",
	KindNotCalled:      "not_called",
	KindUnexpectedCall: "unexpected_call",
	KindInstance:       "instance",
	KindArgCount:       "arg_count",
	KindNullArgument:   "null_argument",
	KindNullPointer:    "null_pointer",
	KindNoContents:     "no_contents",
	KindContents:       "contents",
	KindSavedValue:     "saved_value",
	KindSavedUnset:     "saved_unset",
	KindSavedUnknown:   "saved_unknown",
	KindArgument:       "argument",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Diagnostic is one mismatch found by Validate.
type Diagnostic struct {
	// Mock is the name of the mock that reported the mismatch.
	Mock string

	// Kind classifies the mismatch.
	Kind Kind

	// Index is the position in the expected call sequence, or -1 for the call count summary.
	Index int

	// Position is "before" or "after" when an unexpected call is placed relative to Index.
	Position string

	// Arg names the argument for pointer contents mismatches.
	Arg string

	// Message describes the mismatch.
	Message string
}

// String renders the diagnostic as a single line.
func (d Diagnostic) String() string {
	var b strings.Builder

	b.WriteString("(")
	b.WriteString(d.Mock)
	if d.Index >= 0 {
		b.WriteString(", ")
		if d.Position != "" {
			b.WriteString(d.Position)
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%d", d.Index)
	}
	if d.Arg != "" {
		b.WriteString(", arg=")
		b.WriteString(d.Arg)
	}
	b.WriteString(") ")
	b.WriteString(d.Message)

	return b.String()
}

// Report is the result of validating a Mock.
type Report struct {
	// Name is the name of the validated mock.
	Name string

	// Diagnostics lists every mismatch in the order it was found.
	Diagnostics []Diagnostic
}

// Passed reports whether the recorded calls met every expectation.
func (r *Report) Passed() bool {
	return len(r.Diagnostics) == 0
}

// String renders every diagnostic, one per line.
func (r *Report) String() string {
	var b strings.Builder
	for _, d := range r.Diagnostics {
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	return b.String()
}

// Err returns nil if the report passed, or an error wrapping ErrValidation that carries every
// diagnostic.
func (r *Report) Err() error {
	if r.Passed() {
		return nil
	}
	return fmt.Errorf("%w: %s: %d mismatches\n%s", ErrValidation, r.Name, len(r.Diagnostics), r.String())
}

type reportJSON struct {
	Name        string           `json:"name"`
	Passed      bool             `json:"passed"`
	Diagnostics []diagnosticJSON `json:"diagnostics"`
}

type diagnosticJSON struct {
	Kind     string `json:"kind"`
	Index    int    `json:"index"`
	Position string `json:"position,omitempty"`
	Arg      string `json:"arg,omitempty"`
	Message  string `json:"message"`
}

// JSON encodes the report as canonical JSON (RFC 8785), so equal reports encode to equal bytes.
func (r *Report) JSON() ([]byte, error) {
	out := reportJSON{
		Name:        r.Name,
		Passed:      r.Passed(),
		Diagnostics: make([]diagnosticJSON, 0, len(r.Diagnostics)),
	}
	for _, d := range r.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, diagnosticJSON{
			Kind:     d.Kind.String(),
			Index:    d.Index,
			Position: d.Position,
			Arg:      d.Arg,
			Message:  d.Message,
		})
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	canon, err := jsoncanonicalizer.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize report: %w", err)
	}
	return canon, nil
}

// TestingT is the subset of testing.TB used by Verify.
type TestingT interface {
	Helper()
	Errorf(format string, args ...any)
}

// Verify validates every mock and reports the full text of each failing one through t.
func Verify(t TestingT, mocks ...*Mock) bool {
	t.Helper()

	passed := true
	for _, m := range mocks {
		r := m.Validate()
		if !r.Passed() {
			t.Errorf("%s", r.Err())
			passed = false
		}
	}
	return passed
}
