package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"gopkg.in/yaml.v3"
)

// RefPrefix is the pointer prefix of a named component schema
const RefPrefix = "#/components/schemas/"

// Segment is a highlighted run of text within a line
type Segment struct {
	Text  string
	Token chroma.TokenType
}

// Line is one display line of a rendered schema. Ref is set when the line is
// a bare pointer to a named component schema.
type Line struct {
	Text     string
	Segments []Segment
	Ref      string
}

// Render turns any JSON-marshalable schema value into YAML display lines.
// Output is deterministic: map keys are emitted sorted.
func Render(v any) ([]Line, error) {
	if v == nil {
		return nil, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	if generic == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return nil, fmt.Errorf("failed to render schema: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to render schema: %w", err)
	}

	text := strings.TrimRight(buf.String(), "\n")
	plain := strings.Split(text, "\n")
	highlighted := highlight(text, len(plain))

	lines := make([]Line, len(plain))
	for i, t := range plain {
		lines[i] = Line{Text: t, Ref: parseRef(t)}
		if highlighted != nil {
			lines[i].Segments = highlighted[i]
		} else {
			lines[i].Segments = []Segment{{Text: t, Token: chroma.Text}}
		}
	}
	return lines, nil
}

// highlight tokenises YAML text per line; nil if line counts disagree
func highlight(text string, want int) [][]Segment {
	lexer := lexers.Get("yaml")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, text)
	if err != nil {
		return nil
	}

	split := chroma.SplitTokensIntoLines(it.Tokens())
	for len(split) > want && len(split[len(split)-1]) == 0 {
		split = split[:len(split)-1]
	}
	if len(split) != want {
		return nil
	}

	out := make([][]Segment, want)
	for i, tokens := range split {
		for _, tok := range tokens {
			v := strings.TrimRight(tok.Value, "\n")
			if v == "" {
				continue
			}
			out[i] = append(out[i], Segment{Text: v, Token: tok.Type})
		}
	}
	return out
}

// parseRef returns the component name when line is exactly
// `$ref: <#/components/schemas/Name>`, optionally as a sequence item
func parseRef(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, "- ")

	key, value, ok := strings.Cut(s, ":")
	if !ok || strings.TrimSpace(key) != "$ref" {
		return ""
	}
	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '\'' || value[0] == '"') && value[len(value)-1] == value[0] {
		value = value[1 : len(value)-1]
	}
	name, ok := RefName(value)
	if !ok {
		return ""
	}
	return name
}

// RefName extracts Name from "#/components/schemas/Name"
func RefName(ref string) (string, bool) {
	if !strings.HasPrefix(ref, RefPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(ref, RefPrefix)
	if name == "" || strings.ContainsAny(name, "/ \t") {
		return "", false
	}
	return name, true
}
