// Package testutil provides test doubles for shiplog's collaborator
// interfaces, chiefly a recording VCS mock that captures every call so
// tests can assert not just outcomes but which queries were issued.
package testutil

import (
	"fmt"
	"time"

	"github.com/raveheart1/shiplog/internal/commit"
)

// CallRecord is one captured collaborator call.
type CallRecord struct {
	Method    string
	Args      []string
	Timestamp time.Time
	Err       error
}

// RecordingVCS is a canned-response VCS double. Configure the maps with the
// responses a test needs; every call is appended to Calls.
type RecordingVCS struct {
	// Tag and TagFound configure LastTag.
	Tag      string
	TagFound bool
	// First configures FirstCommit.
	First string
	// Commits configures CommitsSinceTag.
	Commits []commit.Raw
	// Files maps commit hash to the changed file list.
	Files map[string][]string
	// Diffs maps "hash:file" to unified diff text.
	Diffs map[string]string

	Calls []CallRecord
}

func (v *RecordingVCS) record(method string, args ...string) {
	v.Calls = append(v.Calls, CallRecord{Method: method, Args: args, Timestamp: time.Now()})
}

// LastTag returns the configured tag.
func (v *RecordingVCS) LastTag(path string) (string, bool, error) {
	v.record("LastTag", path)
	return v.Tag, v.TagFound, nil
}

// FirstCommit returns the configured first commit hash.
func (v *RecordingVCS) FirstCommit(path string) (string, error) {
	v.record("FirstCommit", path)
	return v.First, nil
}

// CommitsSinceTag returns the configured history.
func (v *RecordingVCS) CommitsSinceTag(path, tag string) ([]commit.Raw, error) {
	v.record("CommitsSinceTag", path, tag)
	return v.Commits, nil
}

// ChangedFiles returns the configured file list for a commit, or an error
// when none is configured.
func (v *RecordingVCS) ChangedFiles(path, hash string) ([]string, error) {
	v.record("ChangedFiles", path, hash)
	files, ok := v.Files[hash]
	if !ok {
		return nil, fmt.Errorf("no changed files configured for %s", hash)
	}
	return files, nil
}

// FileDiff returns the configured diff for a commit/file pair, or an error
// when none is configured.
func (v *RecordingVCS) FileDiff(path, hash, file string) (string, error) {
	v.record("FileDiff", path, hash, file)
	diff, ok := v.Diffs[hash+":"+file]
	if !ok {
		return "", fmt.Errorf("no diff configured for %s in %s", file, hash)
	}
	return diff, nil
}

// CallCount returns how many calls were made to the named method.
func (v *RecordingVCS) CallCount(method string) int {
	n := 0
	for _, c := range v.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// CallsTo returns the captured calls to the named method.
func (v *RecordingVCS) CallsTo(method string) []CallRecord {
	var out []CallRecord
	for _, c := range v.Calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}
