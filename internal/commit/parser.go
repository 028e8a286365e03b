package commit

import (
	"regexp"
	"strings"
)

// headerPattern matches `type[(scope)][!]: subject`. The type and the colon
// are mandatory; scope and the breaking marker are optional. An empty
// subject after the colon is syntactically valid.
var headerPattern = regexp.MustCompile(`^([a-zA-Z]+)(?:\(([^)]*)\))?(!)?:\s?(.*)$`)

// noteKeywords are the footer titles recognized in commit bodies. Matching
// is exact and case-sensitive, per the conventional commits footer syntax.
var noteKeywords = []string{"BREAKING CHANGE", "BREAKING CHANGES"}

// versionBumpPattern matches the chore subject produced by the tool's own
// release commits ("bump version" / "bump version to 1.2.3"). Those commits
// are filtered out before attribution so a release never classifies itself.
var versionBumpPattern = regexp.MustCompile(`^bump version( to .+)?$`)

// Parse parses a commit header and body into a Parsed record. The second
// return value is false when the commit is unclassifiable: no grammar match,
// or a type outside the closed set. Callers drop such commits silently.
//
// Parse is a pure function: the same header/body pair always yields the
// same fields.
func Parse(header, body string) (Parsed, bool) {
	m := headerPattern.FindStringSubmatch(header)
	if m == nil {
		return Parsed{}, false
	}

	typ := Type(m[1])
	if !typ.Valid() {
		return Parsed{}, false
	}

	return Parsed{
		Type:     typ,
		Scope:    m[2],
		Subject:  m[4],
		Breaking: m[3] == "!",
		Notes:    parseNotes(body),
	}, true
}

// parseNotes scans a commit body for footer blocks beginning with one of
// the note keywords. A note's text runs from the keyword's own line to the
// start of the next note or the end of the body.
func parseNotes(body string) []Note {
	if body == "" {
		return nil
	}

	var notes []Note
	for _, line := range strings.Split(body, "\n") {
		if title, rest, ok := matchNoteStart(line); ok {
			notes = append(notes, Note{Title: title, Text: rest})
			continue
		}
		if len(notes) > 0 {
			last := &notes[len(notes)-1]
			last.Text = strings.TrimSpace(last.Text + "\n" + line)
		}
	}
	return notes
}

// matchNoteStart checks whether a body line opens a footer note and returns
// the keyword plus the remainder after the separator.
func matchNoteStart(line string) (title, rest string, ok bool) {
	for _, kw := range noteKeywords {
		if strings.HasPrefix(line, kw+":") {
			return kw, strings.TrimSpace(line[len(kw)+1:]), true
		}
	}
	return "", "", false
}

// IsVersionBumpMarker reports whether p is one of the tool's own release
// commits. The match is case-sensitive on the trimmed subject.
func IsVersionBumpMarker(p Parsed) bool {
	return p.Type == TypeChore && versionBumpPattern.MatchString(strings.TrimSpace(p.Subject))
}
