// Package ethics provides the consent/ethics gate consulted before
// route and playlist construction.
package ethics

import "context"

// Severity grades a detected violation.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Violation describes one breached principle.
type Violation struct {
	Principle   string
	Description string
	Severity    Severity
}

// Decision is the outcome of an evaluation. A denial is an expected
// branch, not an error; callers take their documented fallback path.
type Decision struct {
	Permitted  bool
	Violations []Violation
}

// Permit returns an unconditional allow decision.
func Permit() Decision {
	return Decision{Permitted: true}
}

// Deny returns a denial carrying the given violations.
func Deny(violations ...Violation) Decision {
	return Decision{Permitted: false, Violations: violations}
}

// Evaluator is the gate contract. Implementations must not panic and
// must return a decision for every input.
type Evaluator interface {
	// Evaluate judges the named action against its request context.
	Evaluate(ctx context.Context, action string, reqContext map[string]any) Decision
}

// Permissive allows every action. Useful for tests and for callers that
// gate elsewhere.
type Permissive struct{}

// Evaluate implements Evaluator.
func (Permissive) Evaluate(_ context.Context, _ string, _ map[string]any) Decision {
	return Permit()
}
