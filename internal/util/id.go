// Package util provides shared utility functions.
package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Standard ID lengths for task IDs.
const (
	// TaskIDPrefix starts every generated task ID.
	TaskIDPrefix = "task-"
	// TaskIDLength is the full length of a task ID (e.g., "task-abcdef12").
	TaskIDLength = 13 // "task-" (5) + 8 hex chars
	// DefaultShortIDLength is the default number of characters for short IDs.
	DefaultShortIDLength = 8
	// MaxAmbiguousCandidates is the max number of candidates to show in ambiguous error.
	MaxAmbiguousCandidates = 5
)

// Errors returned by ID resolution functions.
var (
	ErrAmbiguousID = errors.New("ambiguous ID prefix")
	ErrNotFound    = errors.New("not found")
)

// NewTaskID returns a fresh "task-xxxxxxxx" identifier.
func NewTaskID() string {
	return TaskIDPrefix + uuid.NewString()[:TaskIDLength-len(TaskIDPrefix)]
}

// ShortID returns a shortened version of an ID.
// If n is 0 or negative, DefaultShortIDLength (8) is used.
// The function preserves the prefix and truncates the suffix.
//
// Examples:
//
//	ShortID("task-abcdef12", 0) → "task-abc" (8 chars total including prefix)
//	ShortID("task-abcdef12", 10) → "task-abcde" (10 chars total)
//	ShortID("task-xyz", 20) → "task-xyz" (no truncation if shorter)
func ShortID(id string, n int) string {
	if n <= 0 {
		n = DefaultShortIDLength
	}
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// ResolveTaskID resolves a task ID or prefix against the known IDs.
//
// Resolution rules:
//  1. An exact match wins, even if it is also a prefix of other IDs.
//  2. If idOrPrefix matches exactly one task ID prefix, return that ID.
//  3. If multiple matches, return ErrAmbiguousID with candidates.
//  4. If no matches, return ErrNotFound.
//
// The "task-" prefix may be omitted.
func ResolveTaskID(ids []string, idOrPrefix string) (string, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return "", fmt.Errorf("task ID: %w", ErrNotFound)
	}

	// Normalize: if no prefix, assume task prefix
	normalized := strings.ToLower(idOrPrefix)
	if !strings.HasPrefix(normalized, TaskIDPrefix) {
		normalized = TaskIDPrefix + normalized
	}

	var candidates []string
	for _, id := range ids {
		if id == normalized {
			return id, nil
		}
		if strings.HasPrefix(id, normalized) {
			candidates = append(candidates, id)
		}
	}

	return resolveFromCandidates(normalized, candidates)
}

// resolveFromCandidates handles the common resolution logic.
func resolveFromCandidates(prefix string, candidates []string) (string, error) {
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("task with prefix %q: %w", prefix, ErrNotFound)
	case 1:
		return candidates[0], nil
	default:
		// Ambiguous: multiple matches
		shown := candidates
		if len(shown) > MaxAmbiguousCandidates {
			shown = shown[:MaxAmbiguousCandidates]
		}
		return "", fmt.Errorf("%w: prefix %q matches %d tasks: %v",
			ErrAmbiguousID, prefix, len(candidates), shown)
	}
}
