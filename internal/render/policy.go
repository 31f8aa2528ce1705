package render

import (
	"errors"
	"fmt"
	"strings"
)

// Policy decides what happens to nodes the engine does not recognize.
type Policy string

const (
	// PolicySilent drops unknown nodes. Use it for anything an end user sees.
	PolicySilent Policy = "silent"
	// PolicyBestEffort renders whatever text can be recovered from the node.
	PolicyBestEffort Policy = "best-effort"
	// PolicyDiagnostic renders a dump of the raw value. Never use it in production.
	PolicyDiagnostic Policy = "diagnostic"
)

var ErrUnknownPolicy = errors.New("unknown policy")

// ParsePolicy accepts the policy names plus a few common spellings.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent", "":
		return PolicySilent, nil
	case "best-effort", "besteffort", "best_effort":
		return PolicyBestEffort, nil
	case "diagnostic", "debug":
		return PolicyDiagnostic, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

func (p Policy) Valid() bool {
	return p == PolicySilent || p == PolicyBestEffort || p == PolicyDiagnostic
}

// Context carries the per-call render settings. Build one with NewContext;
// the policy is always an explicit choice of the caller.
type Context struct {
	policy Policy
}

// NewContext returns a context for the given policy. An invalid policy
// falls back to silent so a bad setting never leaks raw content.
func NewContext(p Policy) Context {
	if !p.Valid() {
		p = PolicySilent
	}
	return Context{policy: p}
}

func (c Context) Policy() Policy {
	if !c.policy.Valid() {
		return PolicySilent
	}
	return c.policy
}
