// Package commit parses raw git commits into typed conventional-commit
// records. It implements a deliberately narrow subset of the conventional
// commits grammar: `type[(scope)][!]: subject` headers plus BREAKING CHANGE
// footer notes. Anything outside the closed type set is unclassifiable and
// is dropped by callers.
package commit

// Raw is a commit as handed over by the VCS layer: the first message line
// split off as the subject, everything after the first newline as the body.
type Raw struct {
	Hash    string
	Subject string
	Body    string
}

// Note is a footer block from a commit body, e.g. a BREAKING CHANGE
// paragraph. Notes are recorded in order of appearance.
type Note struct {
	Title string
	Text  string
}

// Type is a recognized conventional-commit type. The set is closed: any
// header whose type is not one of these constants fails to parse.
type Type string

const (
	TypeFeat     Type = "feat"
	TypeFeature  Type = "feature"
	TypeImprov   Type = "improv"
	TypeFix      Type = "fix"
	TypeDocs     Type = "docs"
	TypeStyle    Type = "style"
	TypeRefactor Type = "refactor"
	TypePerf     Type = "perf"
	TypeTest     Type = "test"
	TypeChore    Type = "chore"
	TypeCI       Type = "ci"
	TypeBuild    Type = "build"
)

// Parsed is the structured form of a commit. Breaking is set only by the
// `!` marker in the header; a note titled "BREAKING CHANGE" is stored in
// Notes but does not flip the flag on its own. That asymmetry is
// intentional and relied upon by the bump aggregation.
type Parsed struct {
	Hash     string
	Type     Type
	Scope    string
	Subject  string
	Breaking bool
	Notes    []Note
}

// Valid reports whether t is a member of the closed type set.
func (t Type) Valid() bool {
	switch t {
	case TypeFeat, TypeFeature, TypeImprov, TypeFix, TypeDocs, TypeStyle,
		TypeRefactor, TypePerf, TypeTest, TypeChore, TypeCI, TypeBuild:
		return true
	}
	return false
}

// BumpsMinor reports whether commits of this type warrant a minor version
// bump. Every other valid type maps to patch. The switch is kept exhaustive
// over the type constants so a new type fails review, not lookup.
func (t Type) BumpsMinor() bool {
	switch t {
	case TypeFeat, TypeFeature, TypeImprov:
		return true
	case TypeFix, TypeDocs, TypeStyle, TypeRefactor, TypePerf, TypeTest,
		TypeChore, TypeCI, TypeBuild:
		return false
	}
	return false
}

// Section returns the changelog section heading for this commit type.
func (t Type) Section() string {
	switch t {
	case TypeFeat, TypeFeature:
		return "Features"
	case TypeImprov:
		return "Improvements"
	case TypeFix:
		return "Bug Fixes"
	case TypeDocs:
		return "Documentation"
	case TypeStyle:
		return "Styles"
	case TypeRefactor:
		return "Code Refactoring"
	case TypePerf:
		return "Performance Improvements"
	case TypeTest:
		return "Tests"
	case TypeChore:
		return "Chores"
	case TypeCI:
		return "Continuous Integration"
	case TypeBuild:
		return "Build System"
	}
	return ""
}

// SectionOrder returns the changelog section headings in rendering order.
func SectionOrder() []string {
	return []string{
		"Features",
		"Improvements",
		"Bug Fixes",
		"Performance Improvements",
		"Code Refactoring",
		"Documentation",
		"Styles",
		"Tests",
		"Build System",
		"Continuous Integration",
		"Chores",
	}
}
