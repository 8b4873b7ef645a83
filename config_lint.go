package ntcrypt

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// LintSeverity ranks a configuration warning.
type LintSeverity int

const (
	// LintInfo flags a setting worth knowing about.
	LintInfo LintSeverity = iota
	// LintWarn flags a setting that weakens operational posture.
	LintWarn
	// LintHigh flags a setting that leaves stored hashes exposed to online guessing.
	LintHigh
)

func (s LintSeverity) String() string {
	switch s {
	case LintInfo:
		return "info"
	case LintWarn:
		return "warn"
	case LintHigh:
		return "high"
	default:
		return "unknown"
	}
}

// LintWarning is one finding produced by [Config.Lint].
type LintWarning struct {
	Code     string
	Severity LintSeverity
	Message  string
}

// LintResult is the ordered list of findings for a configuration.
type LintResult []LintWarning

// Codes returns the warning codes in order.
func (r LintResult) Codes() []string {
	codes := make([]string, 0, len(r))
	for _, w := range r {
		codes = append(codes, w.Code)
	}
	return codes
}

// BySeverity returns the warnings at or above min.
func (r LintResult) BySeverity(min LintSeverity) LintResult {
	var out LintResult
	for _, w := range r {
		if w.Severity >= min {
			out = append(out, w)
		}
	}
	return out
}

// AsError joins the warnings at or above min into one error, or returns nil.
func (r LintResult) AsError(min LintSeverity) error {
	filtered := r.BySeverity(min)
	if len(filtered) == 0 {
		return nil
	}

	parts := make([]string, 0, len(filtered))
	for _, w := range filtered {
		parts = append(parts, fmt.Sprintf("[%s] %s: %s", w.Severity, w.Code, w.Message))
	}
	return errors.New("config lint: " + strings.Join(parts, "; "))
}

// Lint reports settings that are valid but risky for a scheme without salt
// or cost factor. Lint never fails; use [LintResult.AsError] to gate startup.
func (c *Config) Lint() LintResult {
	var ws LintResult
	add := func(code string, sev LintSeverity, msg string) {
		ws = append(ws, LintWarning{Code: code, Severity: sev, Message: msg})
	}

	if !c.Limiter.Enabled {
		add("limiter_disabled", LintHigh, "failed verifications are not throttled; NT hashes offer no brute-force resistance")
	} else {
		if c.Limiter.MaxAttempts > 20 {
			add("limiter_budget_large", LintWarn, "more than 20 failed verifications allowed per window")
		}
		if c.Limiter.Cooldown < time.Minute {
			add("limiter_cooldown_short", LintWarn, "limiter window shorter than one minute")
		}
	}

	if !c.Audit.Enabled {
		add("audit_disabled", LintInfo, "verification outcomes are not audited")
	} else if !c.Audit.DropIfFull {
		add("audit_blocking", LintWarn, "a slow audit sink will stall verification")
	}

	if !c.Metrics.Enabled {
		add("metrics_disabled", LintInfo, "metrics collection disabled")
	}

	return ws
}
