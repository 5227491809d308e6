// Package logging provides logging configuration types and utilities.
package logging

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mrz1836/go-commit-coach/internal/jsonutil"
)

// StructuredFormatter provides JSON output formatting for structured logging.
//
// This formatter ensures consistent JSON output with standardized field names
// for log aggregation systems.
type StructuredFormatter struct {
	// DisableTimestamp disables automatic timestamp generation
	DisableTimestamp bool
	// TimestampFormat sets the format for the timestamp field
	TimestampFormat string
}

// NewStructuredFormatter creates a new StructuredFormatter with default settings.
func NewStructuredFormatter() *StructuredFormatter {
	return &StructuredFormatter{
		TimestampFormat: time.RFC3339,
	}
}

// Format formats a logrus.Entry as JSON with standardized fields.
func (f *StructuredFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	data := make(logrus.Fields)

	for k, v := range entry.Data {
		data[k] = v
	}

	data["level"] = entry.Level.String()
	data["message"] = entry.Message

	if !f.DisableTimestamp {
		timestampFormat := f.TimestampFormat
		if timestampFormat == "" {
			timestampFormat = time.RFC3339
		}
		data[StandardFields.Timestamp] = entry.Time.Format(timestampFormat)
	}

	jsonBytes, err := jsonutil.MarshalJSON(data)
	if err != nil {
		return nil, err
	}

	return append(jsonBytes, '\n'), nil
}
