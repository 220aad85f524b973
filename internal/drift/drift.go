// Package drift classifies whether a live specification still matches the
// committed snapshot and renders a unified patch between the two when not.
//
// The canonical-string comparison in Check is the sole authority for "same
// specification": formatting-only differences (mapping key order, JSON vs.
// YAML origin, whitespace) never count as drift, and digests are reporting
// evidence rather than a comparison shortcut.
package drift

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"

	"openapi-sync/internal/canon"
)

// Result is the outcome of a drift check. When InSync is false the two
// digests fingerprint the diverging canonical forms for compact reporting.
type Result struct {
	InSync         bool
	SnapshotDigest string
	LiveDigest     string
}

// Check canonicalizes both documents and compares the canonical strings.
func Check(snapshotDoc, liveDoc canon.Document) (Result, error) {
	snap, err := canon.Marshal(snapshotDoc)
	if err != nil {
		return Result{}, err
	}
	live, err := canon.Marshal(liveDoc)
	if err != nil {
		return Result{}, err
	}
	if snap == live {
		return Result{InSync: true}, nil
	}
	return Result{
		SnapshotDigest: canon.Digest(snap),
		LiveDigest:     canon.Digest(live),
	}, nil
}

// Options controls patch rendering.
type Options struct {
	// MaxBytes is a guardrail on input size (snapshot+live). When exceeded,
	// a minimal placeholder patch is returned and oversize=true.
	// 0 means "no limit".
	MaxBytes int

	// Context controls the number of context lines in unified hunks.
	// If 0, default to 4.
	Context int
}

// Unified renders a classic unified patch between the pretty-printed snapshot
// and live forms. Returns the patch body and a flag indicating it was omitted
// due to size.
func Unified(snapshotPretty, livePretty []byte, opt Options) (body string, oversize bool) {
	const fromFile, toFile = "snapshot", "live"

	if opt.MaxBytes > 0 && (len(snapshotPretty)+len(livePretty)) > opt.MaxBytes {
		return omitted(fromFile, toFile), true
	}
	ctx := opt.Context
	if ctx <= 0 {
		ctx = 4
	}
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(string(snapshotPretty)),
		B:        splitLinesKeepNL(string(livePretty)),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  ctx,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil || s == "" {
		// Very rare; return placeholder instead of an empty patch.
		return omitted(fromFile, toFile), false
	}
	return s, false
}

// splitLinesKeepNL splits into lines and keeps newline characters, which
// produces better unified hunks.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}

// omitted returns a compact placeholder when size limits are exceeded.
func omitted(fromFile, toFile string) string {
	return "--- " + fromFile + "\n+++ " + toFile + "\n@@\n# diff omitted (oversize)\n"
}
