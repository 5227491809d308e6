// Package logging provides redaction services for sensitive data protection.
//
// Tokens, API keys, and other credentials must never appear in log output.
// This file implements pattern-based redaction plus a logrus hook that
// applies it automatically to every log entry.
package logging

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// RedactedValue is the placeholder written in place of sensitive data.
const RedactedValue = "[REDACTED]"

// RedactionService handles sensitive data redaction for log output.
//
// Detection combines regex patterns for known secret formats (GitHub
// tokens, bearer headers, api keys in URLs) with field-name matching
// for structured log fields.
type RedactionService struct {
	sensitivePatterns []*regexp.Regexp
	sensitiveFields   []string
}

// NewRedactionService creates a new redaction service with the standard patterns.
func NewRedactionService() *RedactionService {
	return &RedactionService{
		sensitivePatterns: []*regexp.Regexp{
			// GitHub token formats: ghp_ (personal), ghs_ (server), ghr_ (refresh),
			// gho_ (OAuth), github_pat_ (fine-grained)
			regexp.MustCompile(`gh[psor]_[A-Za-z0-9_]{16,}`),
			regexp.MustCompile(`github_pat_[A-Za-z0-9_]{22,}`),
			// Authorization headers
			regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9\-._~+/]+=*`),
			regexp.MustCompile(`(?i)(basic\s+)[A-Za-z0-9+/]+=*`),
			// Sensitive URL query parameters
			regexp.MustCompile(`(?i)([?&](?:access_token|token|api_key|apikey|client_secret)=)[^&\s]+`),
			// key=value assignments with sensitive names
			regexp.MustCompile(`(?i)((?:api[_-]?key|token|secret|password)\s*[=:]\s*)[^\s,;]+`),
		},
		sensitiveFields: []string{
			"token", "api_key", "apikey", "secret", "password", "authorization",
		},
	}
}

// RedactSensitive replaces any detected secrets in text with RedactedValue.
//
// Patterns with a capture group keep the prefix (e.g. "Bearer ") so the
// shape of the log line stays recognizable.
func (r *RedactionService) RedactSensitive(text string) string {
	if text == "" {
		return text
	}
	result := text
	for _, pattern := range r.sensitivePatterns {
		if pattern.NumSubexp() > 0 {
			result = pattern.ReplaceAllString(result, "${1}"+RedactedValue)
		} else {
			result = pattern.ReplaceAllString(result, RedactedValue)
		}
	}
	return result
}

// IsSensitiveField reports whether a structured log field name should have
// its value redacted regardless of content.
func (r *RedactionService) IsSensitiveField(name string) bool {
	lower := strings.ToLower(name)
	for _, field := range r.sensitiveFields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}

// CreateHook returns a logrus hook that redacts entry messages and fields.
func (r *RedactionService) CreateHook() logrus.Hook {
	return &redactionHook{service: r}
}

// redactionHook applies redaction to every log entry before output.
type redactionHook struct {
	service *RedactionService
}

// Levels returns all log levels; redaction applies everywhere.
func (h *redactionHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire redacts the entry message and any string field values in place.
func (h *redactionHook) Fire(entry *logrus.Entry) error {
	entry.Message = h.service.RedactSensitive(entry.Message)

	for key, value := range entry.Data {
		if h.service.IsSensitiveField(key) {
			entry.Data[key] = RedactedValue
			continue
		}
		if str, ok := value.(string); ok {
			entry.Data[key] = h.service.RedactSensitive(str)
		}
	}
	return nil
}
