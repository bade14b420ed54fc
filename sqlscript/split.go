package sqlscript

import (
	"regexp"
	"strconv"
	"strings"
)

// lexer tracks whether a position in SQL text is inside a literal, a quoted
// identifier, a comment or a dollar-quoted body. Only positions outside all
// of them can end a statement or batch.
type lexer struct {
	quote       byte // ', " or ` while inside a quoted run
	lineComment bool
	blockDepth  int
	dollarTag   string
}

func (l *lexer) atTopLevel() bool {
	return l.quote == 0 && !l.lineComment && l.blockDepth == 0 && l.dollarTag == ""
}

// advance consumes the token starting at sql[i] and returns its width.
func (l *lexer) advance(sql string, i int) int {
	c := sql[i]
	next := byte(0)
	if i+1 < len(sql) {
		next = sql[i+1]
	}

	switch {
	case l.lineComment:
		if c == '\n' {
			l.lineComment = false
		}
		return 1
	case l.blockDepth > 0:
		switch {
		case c == '/' && next == '*':
			l.blockDepth++
			return 2
		case c == '*' && next == '/':
			l.blockDepth--
			return 2
		}
		return 1
	case l.quote != 0:
		if c == l.quote {
			// A doubled quote is an escaped quote, not the end of the run.
			if next == l.quote {
				return 2
			}
			l.quote = 0
		}
		return 1
	case l.dollarTag != "":
		if strings.HasPrefix(sql[i:], l.dollarTag) {
			n := len(l.dollarTag)
			l.dollarTag = ""
			return n
		}
		return 1
	}

	switch {
	case c == '-' && next == '-':
		l.lineComment = true
		return 2
	case c == '/' && next == '*':
		l.blockDepth = 1
		return 2
	case c == '\'' || c == '"' || c == '`':
		l.quote = c
		return 1
	case c == '$':
		if tag, ok := dollarTag(sql, i); ok {
			l.dollarTag = tag
			return len(tag)
		}
	}
	return 1
}

// dollarTag returns the $$ or $tag$ opener starting at sql[i].
func dollarTag(sql string, i int) (string, bool) {
	if i+1 < len(sql) && sql[i+1] == '$' {
		return "$$", true
	}
	j := i + 1
	if j >= len(sql) || !isTagStart(sql[j]) {
		return "", false
	}
	for j < len(sql) && isTagChar(sql[j]) {
		j++
	}
	if j < len(sql) && sql[j] == '$' {
		return sql[i : j+1], true
	}
	return "", false
}

func isTagStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isTagChar(c byte) bool {
	return isTagStart(c) || (c >= '0' && c <= '9')
}

// separator reports the width of a separator at sql[i] and how many times
// the preceding part should be emitted. A zero width means no separator.
type separator func(sql string, i int) (width, repeat int)

// split cuts sql at every top-level separator. Parts are trimmed and empty
// parts dropped.
func split(sql string, sep separator) []string {
	var parts []string
	emit := func(part string, repeat int) {
		part = strings.TrimSpace(part)
		if part == "" {
			return
		}
		for range repeat {
			parts = append(parts, part)
		}
	}

	var l lexer
	start := 0
	for i := 0; i < len(sql); {
		if l.atTopLevel() {
			if width, repeat := sep(sql, i); width > 0 {
				emit(sql[start:i], repeat)
				i += width
				start = i
				continue
			}
		}
		i += l.advance(sql, i)
	}
	emit(sql[start:], 1)
	return parts
}

// SplitStatements splits sql on semicolons that are outside string
// literals, quoted identifiers, comments and dollar-quoted bodies.
// Comments stay attached to the statement they precede.
func SplitStatements(sql string) []string {
	return split(sql, func(sql string, i int) (int, int) {
		if sql[i] == ';' {
			return 1, 1
		}
		return 0, 0
	})
}

var goLine = regexp.MustCompile(`(?i)^[ \t]*GO(?:[ \t]+(\d+))?[ \t]*(?:\r?\n|$)`)

// SplitBatches splits sql on lines holding only the GO batch separator.
// "GO n" repeats the preceding batch n times.
func SplitBatches(sql string) []string {
	return split(sql, func(sql string, i int) (int, int) {
		if i > 0 && sql[i-1] != '\n' {
			return 0, 0
		}
		m := goLine.FindStringSubmatch(sql[i:])
		if m == nil {
			return 0, 0
		}
		repeat := 1
		if m[1] != "" {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				repeat = n
			}
		}
		return len(m[0]), repeat
	})
}
