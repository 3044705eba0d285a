package netlist

import (
	"regexp"
	"strings"
)

var (
	reSpace  = regexp.MustCompile(`[\t ]+`)
	reAssign = regexp.MustCompile(` *= *`)
	reComma  = regexp.MustCompile(`, +`)
	braces   = strings.NewReplacer("{", "'", "}", "'")
)

type logical struct {
	text    string
	comment bool
}

// NormalizeText splits text into lines and normalizes them.
func NormalizeText(text string, d *Dialect, keepComments bool) []string {
	return Normalize(strings.Split(text, "\n"), d, keepComments)
}

// Normalize rewrites raw netlist lines into one canonical line per statement.
func Normalize(lines []string, d *Dialect, keepComments bool) []string {
	var stmts []logical
	last := -1 // most recent non-comment statement

	for _, raw := range lines {
		line := strings.TrimRight(strings.TrimLeft(raw, " \t\r\n\v\f"), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		// Full line comment
		if strings.HasPrefix(line, "*") {
			if keepComments {
				stmts = append(stmts, logical{text: line, comment: true})
			}
			continue
		}

		line = stripEOL(line, d.EOLComments)

		// Line continue
		if strings.HasPrefix(line, "+") {
			rest := strings.TrimLeft(line[1:], " \t")
			if strings.TrimSpace(rest) == "" {
				continue
			}
			if last >= 0 {
				stmts[last].text += " " + rest
				continue
			}
			line = rest
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		stmts = append(stmts, logical{text: line})
		last = len(stmts) - 1
	}

	out := make([]string, 0, len(stmts))
	for _, st := range stmts {
		if st.comment {
			out = append(out, st.text)
			continue
		}
		out = append(out, strings.TrimSpace(rewrite(st.text, d)))
	}
	return out
}

func stripEOL(line, markers string) string {
	if markers == "" {
		return line
	}
	if i := strings.IndexAny(line, markers); i >= 0 {
		return line[:i]
	}
	return line
}

func rewrite(line string, d *Dialect) string {
	for _, st := range d.Stages {
		switch st {
		case StageCollapse:
			line = reSpace.ReplaceAllString(line, " ")
		case StageQuotes:
			line = squeezeQuoted(line)
		case StageAssign:
			line = reAssign.ReplaceAllString(line, "=")
		case StageComma:
			line = reComma.ReplaceAllString(line, ",")
		case StageBraces:
			line = braces.Replace(line)
		case StageLower:
			if !preservesCase(line, d.CasePreserving) {
				line = strings.ToLower(line)
			}
		}
	}
	return line
}

// squeezeQuoted drops spaces between single quotes, keeping the quotes.
func squeezeQuoted(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	quoted := false
	for _, r := range line {
		switch {
		case r == '\'':
			quoted = !quoted
		case quoted && r == ' ':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func preservesCase(line string, keywords []string) bool {
	kw := strings.ToLower(keyword(line))
	for _, k := range keywords {
		if kw == k {
			return true
		}
	}
	return false
}

// keyword returns the first token of a line.
func keyword(line string) string {
	line = strings.TrimLeft(line, " \t")
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i]
	}
	return line
}
