package changelog

import (
	"strings"

	"github.com/yaklabco/changelint/pkg/span"
)

// Parse builds a Document from text in a single forward scan.
// It never fails: malformed structure is recorded in the model.
func Parse(text string) *Document {
	locator := span.NewLocator(text)
	p := &parser{
		src:   text,
		lines: locator.Lines(),
		doc: &Document{
			Source:         text,
			Locator:        locator,
			LinkReferences: make(map[string]LinkDefinition),
		},
		change: -1,
	}
	p.run()
	return p.doc
}

type parser struct {
	src   string
	lines []span.Line
	doc   *Document

	section     *Section
	sectionBody bool
	change      int

	fence fence
}

// fence tracks an open fenced code block.
type fence struct {
	char   byte
	length int
}

func (f fence) open() bool {
	return f.length > 0
}

func (p *parser) run() {
	inParagraph := false

	for idx := 0; idx < len(p.lines); idx++ {
		line := p.lines[idx]
		content := p.src[line.StartOffset:line.ContentEnd]

		if p.fence.open() {
			if p.fence.closedBy(content) {
				p.fence = fence{}
			}
			p.markContent()
			continue
		}

		if isBlank(content) {
			inParagraph = false
			continue
		}

		if opened, ok := openFence(content); ok {
			p.fence = opened
			p.markContent()
			inParagraph = false
			continue
		}

		if heading, ok := parseATX(p.src, line); ok {
			p.handleHeading(heading)
			inParagraph = false
			continue
		}

		// Unlike CommonMark, a definition may directly follow a paragraph line:
		// changelogs often end with a reference block and no separating blank.
		if def, ok := parseDefinition(p.src, line); ok {
			p.addDefinition(def)
			inParagraph = false
			continue
		}

		if !inParagraph && idx+1 < len(p.lines) && !startsBlock(content) {
			next := p.lines[idx+1]
			if level := setextLevel(p.src[next.StartOffset:next.ContentEnd]); level > 0 {
				start, end := trimBounds(p.src, line.StartOffset, line.ContentEnd)
				p.handleHeading(Heading{Level: level, Span: line.Span(), Text: span.New(start, end)})
				idx++
				continue
			}
		}

		p.markContent()
		p.addUsages(line.StartOffset, content)
		inParagraph = true
	}

	p.closeSection()
}

func (p *parser) handleHeading(heading Heading) {
	switch heading.Level {
	case 1:
		if p.doc.Title == nil {
			title := heading
			p.doc.Title = &title
		} else {
			p.doc.ExtraTitles = append(p.doc.ExtraTitles, heading)
		}
		p.addUsages(heading.Text.Start, p.doc.Text(heading.Text))

	case 2:
		p.closeSection()
		section := classifySection(p.src, heading)
		p.doc.Sections = append(p.doc.Sections, section)
		switch section.Kind {
		case KindUnreleased:
			if p.doc.Unreleased == nil {
				p.doc.Unreleased = section
			}
		case KindRelease:
			p.doc.Releases = append(p.doc.Releases, section)
		case KindMalformed:
		}
		p.section = section

	case 3:
		p.addUsages(heading.Text.Start, p.doc.Text(heading.Text))
		if p.section == nil {
			return
		}
		p.section.Changes = append(p.section.Changes, ChangeSection{
			Heading: heading,
			Type:    ParseChangeType(p.doc.Text(heading.Text)),
			Empty:   true,
		})
		p.change = len(p.section.Changes) - 1

	default:
		p.markContent()
		p.addUsages(heading.Text.Start, p.doc.Text(heading.Text))
	}
}

func (p *parser) closeSection() {
	if p.section != nil {
		p.section.Empty = len(p.section.Changes) == 0 && !p.sectionBody
	}
	p.section = nil
	p.sectionBody = false
	p.change = -1
}

// markContent records a non-blank body line in the current section.
func (p *parser) markContent() {
	if p.section == nil {
		return
	}
	p.sectionBody = true
	if p.change >= 0 {
		p.section.Changes[p.change].Empty = false
	}
}

func (p *parser) addDefinition(def LinkDefinition) {
	if _, exists := p.doc.LinkReferences[def.Label]; exists {
		p.doc.DuplicateReferences = append(p.doc.DuplicateReferences, def)
		return
	}
	p.doc.LinkReferences[def.Label] = def
}

func (p *parser) addUsages(base int, text string) {
	p.doc.LinkUsages = append(p.doc.LinkUsages, scanUsages(base, text)...)
}

// openFence recognizes the opening line of a fenced code block.
func openFence(content string) (fence, bool) {
	pos, end := skipIndent(content, 0, len(content))
	if pos < 0 || pos >= end {
		return fence{}, false
	}

	char := content[pos]
	if char != '`' && char != '~' {
		return fence{}, false
	}
	length := countRun(content, pos, char)
	if length < 3 {
		return fence{}, false
	}
	if char == '`' && strings.IndexByte(content[pos+length:], '`') >= 0 {
		return fence{}, false
	}
	return fence{char: char, length: length}, true
}

// closedBy reports whether content closes the fence.
func (f fence) closedBy(content string) bool {
	pos, end := skipIndent(content, 0, len(content))
	if pos < 0 || pos >= end || content[pos] != f.char {
		return false
	}
	length := countRun(content, pos, f.char)
	return length >= f.length && isBlank(content[pos+length:])
}
