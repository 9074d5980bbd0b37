package changelog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/changelint/pkg/changelog"
	"github.com/yaklabco/changelint/pkg/span"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(content)
}

func TestParseKeepAChangelog(t *testing.T) {
	t.Parallel()

	doc := changelog.Parse(readFixture(t, "keepachangelog.md"))

	require.NotNil(t, doc.Title)
	assert.Equal(t, "Changelog", doc.Text(doc.Title.Text))
	assert.Empty(t, doc.ExtraTitles)

	require.NotNil(t, doc.Unreleased)
	assert.Equal(t, changelog.KindUnreleased, doc.Unreleased.Kind)
	assert.True(t, doc.Unreleased.Empty)
	assert.Same(t, doc.Sections[0], doc.Unreleased)

	require.Len(t, doc.Releases, 2)
	assert.Len(t, doc.Sections, 3)

	latest := doc.Releases[0]
	assert.Equal(t, "1.1.0", latest.Version)
	require.NotNil(t, latest.Date)
	assert.Equal(t, "2024-03-02", doc.Text(*latest.Date))
	assert.Nil(t, latest.Yanked)
	assert.False(t, latest.Empty)
	require.Len(t, latest.Changes, 2)
	assert.Equal(t, changelog.ChangeAdded, latest.Changes[0].Type)
	assert.Equal(t, changelog.ChangeFixed, latest.Changes[1].Type)
	assert.False(t, latest.Changes[0].Empty)

	oldest := doc.Releases[1]
	assert.Equal(t, "1.0.0", oldest.Version)
	require.Len(t, oldest.Changes, 1)

	assert.Len(t, doc.LinkReferences, 5)
	assert.Contains(t, doc.LinkReferences, "unreleased")
	assert.NotContains(t, doc.LinkReferences, "inside")
	assert.Empty(t, doc.DuplicateReferences)

	labels := make([]string, 0, len(doc.LinkUsages))
	for _, usage := range doc.LinkUsages {
		labels = append(labels, usage.Label)
	}
	assert.Equal(t, []string{"docs", "#12"}, labels)
}

func TestParseReleaseHeadings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		heading string
		kind    changelog.SectionKind
		version string
		date    string
		yanked  string
	}{
		{name: "bracketed with date", heading: "## [1.0.0] - 2024-01-01", kind: changelog.KindRelease, version: "1.0.0", date: "2024-01-01"},
		{name: "bare version", heading: "## 1.0.0 - 2024-01-01", kind: changelog.KindRelease, version: "1.0.0", date: "2024-01-01"},
		{name: "v prefix", heading: "## v2.3.4 - 2024-01-01", kind: changelog.KindRelease, version: "v2.3.4", date: "2024-01-01"},
		{name: "inline link", heading: "## [1.0.0](https://example.com) - 2024-01-01", kind: changelog.KindRelease, version: "1.0.0", date: "2024-01-01"},
		{name: "reference link", heading: "## [1.0.0][v1] - 2024-01-01", kind: changelog.KindRelease, version: "1.0.0", date: "2024-01-01"},
		{name: "yanked", heading: "## [0.9.0] - 2023-06-01 [YANKED]", kind: changelog.KindRelease, version: "0.9.0", date: "2023-06-01", yanked: "[YANKED]"},
		{name: "malformed yanked kept", heading: "## [0.9.0] - 2023-06-01 yanked!", kind: changelog.KindRelease, version: "0.9.0", date: "2023-06-01", yanked: "yanked!"},
		{name: "yanked without date", heading: "## [0.9.0] [YANKED]", kind: changelog.KindRelease, version: "0.9.0", yanked: "[YANKED]"},
		{name: "no date", heading: "## [1.0.0]", kind: changelog.KindRelease, version: "1.0.0"},
		{name: "malformed date kept", heading: "## [1.0.0] - 01/02/2024", kind: changelog.KindRelease, version: "1.0.0", date: "01/02/2024"},
		{name: "em dash separator", heading: "## [1.0.0] — 2024-01-01", kind: changelog.KindRelease, version: "1.0.0", date: "2024-01-01"},
		{name: "dash glued to date", heading: "## [1.0.0] -2024-01-01", kind: changelog.KindRelease, version: "1.0.0", date: "2024-01-01"},
		{name: "closing hashes", heading: "## [1.0.0] - 2024-01-01 ##", kind: changelog.KindRelease, version: "1.0.0", date: "2024-01-01"},
		{name: "unreleased bracketed", heading: "## [Unreleased]", kind: changelog.KindUnreleased},
		{name: "unreleased plain lowercase", heading: "## unreleased", kind: changelog.KindUnreleased},
		{name: "unreleased link", heading: "## [Unreleased](https://example.com/compare)", kind: changelog.KindUnreleased},
		{name: "prose heading", heading: "## Notes about things", kind: changelog.KindMalformed},
		{name: "empty brackets", heading: "## [] - 2024-01-01", kind: changelog.KindMalformed},
		{name: "unclosed bracket", heading: "## [1.0.0 - 2024-01-01", kind: changelog.KindMalformed},
		{name: "empty heading", heading: "##", kind: changelog.KindMalformed},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			doc := changelog.Parse(testCase.heading + "\n")
			require.Len(t, doc.Sections, 1)
			section := doc.Sections[0]

			assert.Equal(t, testCase.kind, section.Kind)
			assert.Equal(t, testCase.version, section.Version)
			if testCase.date == "" {
				assert.Nil(t, section.Date)
			} else if assert.NotNil(t, section.Date) {
				assert.Equal(t, testCase.date, doc.Text(*section.Date))
			}
			if testCase.yanked == "" {
				assert.Nil(t, section.Yanked)
			} else if assert.NotNil(t, section.Yanked) {
				assert.Equal(t, testCase.yanked, doc.Text(*section.Yanked))
			}
		})
	}
}

func TestParseChangeTypes(t *testing.T) {
	t.Parallel()

	doc := changelog.Parse("## [1.0.0] - 2024-01-01\n### added\n- a\n### SECURITY\n- b\n### Improvements\n- c\n")
	require.Len(t, doc.Releases, 1)

	changes := doc.Releases[0].Changes
	require.Len(t, changes, 3)
	assert.Equal(t, changelog.ChangeAdded, changes[0].Type)
	assert.Equal(t, changelog.ChangeSecurity, changes[1].Type)
	assert.Equal(t, changelog.ChangeUnknown, changes[2].Type)
	assert.Equal(t, "Improvements", doc.Text(changes[2].Heading.Text))
}

func TestParseEmptiness(t *testing.T) {
	t.Parallel()

	text := "## [2.0.0] - 2024-02-01\n\n### Added\n\n### Fixed\n- fix\n## [1.0.0] - 2024-01-01\n\n" +
		"## [0.9.0] - 2023-01-01\nJust prose.\n## [0.1.0] - 2022-01-01\n[0.1.0]: https://example.com\n"
	doc := changelog.Parse(text)
	require.Len(t, doc.Releases, 4)

	assert.False(t, doc.Releases[0].Empty)
	assert.True(t, doc.Releases[0].Changes[0].Empty)
	assert.False(t, doc.Releases[0].Changes[1].Empty)
	assert.True(t, doc.Releases[1].Empty)
	assert.False(t, doc.Releases[2].Empty, "free-form content counts as content")
	assert.True(t, doc.Releases[3].Empty, "definitions are not content")
}

func TestParseTitles(t *testing.T) {
	t.Parallel()

	doc := changelog.Parse("# Changelog\n\n# Another\n\nChangelog again\n===============\n")
	require.NotNil(t, doc.Title)
	assert.Equal(t, "Changelog", doc.Text(doc.Title.Text))
	require.Len(t, doc.ExtraTitles, 2)
	assert.Equal(t, "Another", doc.Text(doc.ExtraTitles[0].Text))
	assert.Equal(t, "Changelog again", doc.Text(doc.ExtraTitles[1].Text))
}

func TestParseSetextSection(t *testing.T) {
	t.Parallel()

	doc := changelog.Parse("Changelog\n=========\n\n1.0.0 - 2024-01-01\n------------------\n- item\n")
	require.NotNil(t, doc.Title)
	require.Len(t, doc.Releases, 1)
	assert.Equal(t, "1.0.0", doc.Releases[0].Version)
	assert.False(t, doc.Releases[0].Empty)
}

func TestParseListFollowedByRule(t *testing.T) {
	t.Parallel()

	doc := changelog.Parse("## [1.0.0] - 2024-01-01\n- item\n---\n")
	assert.Len(t, doc.Sections, 1)
}

func TestParseLinkReferences(t *testing.T) {
	t.Parallel()

	text := "[Foo]: https://a.example\n[foo]: https://b.example\n[ Bar  Baz ]: https://c.example \"title\"\n"
	doc := changelog.Parse(text)

	require.Len(t, doc.LinkReferences, 2)
	assert.Equal(t, "https://a.example", doc.LinkReferences["foo"].Target)
	assert.Equal(t, "https://c.example", doc.LinkReferences["bar baz"].Target)

	require.Len(t, doc.DuplicateReferences, 1)
	duplicate := doc.DuplicateReferences[0]
	assert.Equal(t, "foo", duplicate.Label)
	assert.Equal(t, "foo", doc.Text(duplicate.LabelSpan))
	assert.Equal(t, "[foo]: https://b.example", doc.Text(duplicate.Span))
}

func TestParseDefinitionAfterParagraphLine(t *testing.T) {
	t.Parallel()

	doc := changelog.Parse("## [1.0.0] - 2024-01-01\n- Fixed [bug].\n[bug]: https://example.com/1\n")
	require.Contains(t, doc.LinkReferences, "bug")
	assert.Equal(t, "https://example.com/1", doc.LinkReferences["bug"].Target)
}

func TestParseLinkUsages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   string
		labels []string
	}{
		{name: "shortcut", line: "see [foo]", labels: []string{"foo"}},
		{name: "full reference", line: "see [the docs][Docs]", labels: []string{"docs"}},
		{name: "collapsed reference", line: "see [Foo][]", labels: []string{"foo"}},
		{name: "inline link is not a usage", line: "see [foo](https://example.com)", labels: nil},
		{name: "inline link with brackets in url", line: "[a](https://x/[b])", labels: nil},
		{name: "code span is skipped", line: "use `[foo]` here", labels: nil},
		{name: "double backtick code span", line: "use `` [a] ` `` and [b]", labels: []string{"b"}},
		{name: "escaped bracket", line: `literal \[foo] text`, labels: nil},
		{name: "task checkbox", line: "- [x] done and [ ] open", labels: nil},
		{name: "footnote", line: "text[^1]", labels: nil},
		{name: "image reference", line: "![logo][img]", labels: []string{"img"}},
		{name: "several", line: "[a] and [b][c] and [d](e)", labels: []string{"a", "c"}},
		{name: "unclosed bracket", line: "broken [foo", labels: nil},
		{name: "whitespace collapsed", line: "[Foo   Bar]", labels: []string{"foo bar"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			doc := changelog.Parse(testCase.line + "\n")
			var labels []string
			for _, usage := range doc.LinkUsages {
				labels = append(labels, usage.Label)
			}
			assert.Equal(t, testCase.labels, labels)
		})
	}
}

func TestParseUsageSpans(t *testing.T) {
	t.Parallel()

	text := "## [1.0.0] - 2024-01-01\r\n- fixes [Bug]\r\n"
	doc := changelog.Parse(text)

	require.Len(t, doc.LinkUsages, 1)
	usage := doc.LinkUsages[0]
	assert.Equal(t, "bug", usage.Label)
	assert.Equal(t, "Bug", doc.Text(usage.Span))

	pos, err := doc.Locator.Resolve(usage.Span.Start)
	require.NoError(t, err)
	assert.Equal(t, span.Position{Line: 2, Column: 10}, pos)
}

func TestParseFencedCode(t *testing.T) {
	t.Parallel()

	text := "## [1.0.0] - 2024-01-01\n### Added\n~~~~\n## not a section\n[x]: y\n[usage]\n~~~~\n## [0.1.0] - 2023-01-01\n"
	doc := changelog.Parse(text)

	require.Len(t, doc.Sections, 2)
	assert.False(t, doc.Releases[0].Changes[0].Empty)
	assert.Empty(t, doc.LinkReferences)
	assert.Empty(t, doc.LinkUsages)
}

func TestParseIsTotal(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"\n",
		"\r\n\r\n",
		"\x00\xff\xfe binary \x80",
		"#######",
		"## [",
		"## ]] [[ -- [YANKED",
		"[[[[]]]]",
		"```",
		"`````\n## inside\n",
		"[]:",
		"### orphan\n- item",
		"=====\n-----",
		"## [1.0.0] - \n",
		"\t# tabbed\n    ## indented code",
	}

	for _, input := range inputs {
		doc := changelog.Parse(input)
		require.NotNil(t, doc)
		assert.Equal(t, input, doc.Source)
		for _, usage := range doc.LinkUsages {
			assert.LessOrEqual(t, usage.Span.End, len(input))
		}
	}
}

func TestParseIsIdempotent(t *testing.T) {
	t.Parallel()

	text := readFixture(t, "keepachangelog.md")
	first := changelog.Parse(text)
	second := changelog.Parse(text)

	diff := cmp.Diff(first, second, cmpopts.IgnoreFields(changelog.Document{}, "Locator"))
	assert.Empty(t, diff)
}

func TestParseChangeType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, changelog.ChangeDeprecated, changelog.ParseChangeType("  deprecated "))
	assert.Equal(t, changelog.ChangeUnknown, changelog.ParseChangeType("Add"))
	assert.Equal(t, "Removed", changelog.ChangeRemoved.String())
	assert.Equal(t, "Unknown", changelog.ChangeType(99).String())
	assert.Len(t, changelog.ChangeTypes(), 6)
}

func TestHasInlineMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text   string
		markup bool
	}{
		{text: "Changelog", markup: false},
		{text: "Changelog for my-project 2.x", markup: false},
		{text: "[Changelog](https://example.com)", markup: true},
		{text: "*Changelog*", markup: true},
		{text: "The `tool` changelog", markup: true},
		{text: "<https://example.com>", markup: true},
		{text: "Changelog <b>bold</b>", markup: true},
		{text: "[undefined] label", markup: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.markup, changelog.HasInlineMarkup(testCase.text))
		})
	}
}
