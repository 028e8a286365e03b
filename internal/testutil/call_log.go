package testutil

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CallLogEntry represents a single call record in YAML format. It wraps
// CallRecord for serialization, handling error and time formatting.
type CallLogEntry struct {
	Method    string   `yaml:"method"`
	Args      []string `yaml:"args,omitempty"`
	Timestamp string   `yaml:"timestamp"`
	Error     string   `yaml:"error,omitempty"`
}

// CallLog wraps []CallLogEntry for YAML serialization.
type CallLog struct {
	Entries []CallLogEntry `yaml:"entries"`
}

// WriteCallLog writes a slice of CallRecords to a YAML file. Used to dump
// a mock's captured collaborator traffic for debugging failing tests.
func WriteCallLog(path string, records []CallRecord) error {
	log := CallLog{Entries: make([]CallLogEntry, 0, len(records))}

	for _, r := range records {
		entry := CallLogEntry{
			Method:    r.Method,
			Args:      r.Args,
			Timestamp: r.Timestamp.Format(time.RFC3339Nano),
		}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		log.Entries = append(log.Entries, entry)
	}

	data, err := yaml.Marshal(log)
	if err != nil {
		return fmt.Errorf("marshaling call log to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing call log to %s: %w", path, err)
	}

	return nil
}

// ReadCallLog reads a YAML call log file back. The error field comes back
// as a string since the original error type cannot be reconstructed.
func ReadCallLog(path string) (*CallLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading call log from %s: %w", path, err)
	}

	var log CallLog
	if err := yaml.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("parsing call log YAML: %w", err)
	}

	return &log, nil
}
