package changelog

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// HasInlineMarkup reports whether text renders as anything other than plain
// text: emphasis, links, images, code spans, autolinks or raw HTML.
func HasInlineMarkup(source string) bool {
	root := goldmark.DefaultParser().Parse(text.NewReader([]byte(source)))

	found := false
	//nolint:errcheck // Walker never returns an error.
	ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node.Kind() {
		case ast.KindEmphasis, ast.KindLink, ast.KindImage, ast.KindCodeSpan, ast.KindAutoLink, ast.KindRawHTML:
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}
