package constgen

import "strings"

// substitution replaces every occurrence of match with replacement.
type substitution struct {
	match       string
	replacement string
}

// escapeTable is applied in a single pass; at any position the first
// matching entry wins and replacements are never rescanned.
var escapeTable = []substitution{
	{`\`, `\\`},
	{`'`, `\'`},
	{`"`, `\"`},
	{`?`, `\?`},
	{"\n", `\n`},
	{"\r", ""},
}

var escaper = newEscaper(escapeTable)

func newEscaper(table []substitution) *strings.Replacer {
	pairs := make([]string, 0, 2*len(table))
	for _, s := range table {
		pairs = append(pairs, s.match, s.replacement)
	}
	return strings.NewReplacer(pairs...)
}

// Escape makes line safe to place between double quotes in a C string
// literal. It is a single left-to-right pass; escaping an already escaped
// line doubles its backslashes.
func Escape(line string) string {
	return escaper.Replace(line)
}
