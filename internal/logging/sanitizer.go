package logging

import (
	"regexp"
	"strings"
	"sync"
)

// Sanitizer redacts credentials from log output: the shared-secret API key
// sent in the X-API-Key header, plus common token shapes that can leak
// through backend error bodies.
type Sanitizer struct {
	mu       sync.RWMutex
	patterns []*regexp.Regexp
	literals []string
	redacted string
}

// NewSanitizer creates a sanitizer with default patterns.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		patterns: defaultPatterns(),
		redacted: "[REDACTED]",
	}
}

func defaultPatterns() []*regexp.Regexp {
	patterns := []string{
		// X-API-Key header dumps
		`(?i)x-api-key["'\s:=]+[^\s"']{8,}`,
		// Generic API keys
		`(?i)api[_-]?key["'\s:=]+[a-zA-Z0-9_-]{8,}`,
		// Bearer tokens
		`(?i)bearer\s+[a-zA-Z0-9._-]{20,}`,
		// Generic secrets and passwords
		`(?i)secret["'\s:=]+[a-zA-Z0-9_-]{8,}`,
		`(?i)password["'\s:=]+[^\s"']{8,}`,
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// Sanitize redacts credentials from a string.
func (s *Sanitizer) Sanitize(input string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := input
	for _, lit := range s.literals {
		result = strings.ReplaceAll(result, lit, s.redacted)
	}
	for _, pattern := range s.patterns {
		result = pattern.ReplaceAllString(result, s.redacted)
	}
	return result
}

// AddLiteral registers an exact string to redact wherever it appears. Short
// values are ignored to avoid mangling unrelated output.
func (s *Sanitizer) AddLiteral(value string) {
	if len(value) < 4 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.literals = append(s.literals, value)
}

// AddPattern adds a custom redaction pattern.
func (s *Sanitizer) AddPattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns = append(s.patterns, re)
	return nil
}
