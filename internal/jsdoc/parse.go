package jsdoc

import (
	"regexp"
	"strings"

	"purets/internal/source"
)

var (
	paramTagRe   = regexp.MustCompile(`(?m)^@param\s+(?:\{([^}]*)\}\s+)?(\S+)(?:\s+(.*))?$`)
	returnsTagRe = regexp.MustCompile(`(?m)^@returns?\b`)
	allowTagRe   = regexp.MustCompile(`(?m)^@allow\s+([a-z]+)`)
)

// parseComment strips JSDoc decoration from a raw /** ... */ comment and
// extracts its tags. span is the comment node's own span, used verbatim as
// Block.Span's placeholder until the caller rebinds it to the declaration.
func parseComment(raw string, span source.Span) *Block {
	body := stripDecoration(raw)

	block := &Block{
		Span: span,
		Raw:  raw,
	}

	var descLines []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "@") {
			continue
		}
		descLines = append(descLines, trimmed)
	}
	block.Description = strings.TrimSpace(strings.Join(descLines, "\n"))

	for _, m := range paramTagRe.FindAllStringSubmatch(body, -1) {
		block.Params = append(block.Params, ParamTag{
			Type: m[1],
			Name: m[2],
		})
	}

	block.HasReturns = returnsTagRe.MatchString(body)

	for _, m := range allowTagRe.FindAllStringSubmatch(body, -1) {
		block.Allow = append(block.Allow, m[1])
	}

	return block
}

// stripDecoration removes the /** */ fence and per-line leading "*" from a
// raw JSDoc comment, yielding plain tag/description text for parseComment.
func stripDecoration(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimSuffix(text, "*/")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		trimmed = strings.TrimPrefix(trimmed, "*")
		trimmed = strings.TrimPrefix(trimmed, " ")
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}
