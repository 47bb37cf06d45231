package command

import (
	"strconv"
	"strings"
)

// Kind selects how a rule recognizes its phrase and extracts arguments.
type Kind int

const (
	// KindExact matches when the whole line equals Prefix.
	KindExact Kind = iota
	// KindRest matches lines starting with Prefix; the trimmed remainder is
	// the single argument.
	KindRest
	// KindSplit splits the remainder on the first Separator into two
	// trimmed arguments.
	KindSplit
	// KindQuoted requires the trimmed remainder to be wrapped in double
	// quotes; the trimmed inner text is the single argument.
	KindQuoted
	// KindQuotedPair requires a quoted first argument whose closing quote is
	// immediately followed by Separator; the trimmed text after it is the
	// second argument.
	KindQuotedPair
	// KindQuotedLead reads a quoted first argument up to its closing quote,
	// then expects Separator after any whitespace; the trimmed text after
	// it is the second argument.
	KindQuotedLead
	// KindQuotedSplit splits the remainder on the first Separator; the
	// trimmed left side must be quoted and the trimmed right side is the
	// second argument.
	KindQuotedSplit
	// KindCompound splits the remainder on Separator, then splits the left
	// side on Second; the middle and right pieces must be quoted.
	KindCompound
	// KindFields takes the first two whitespace-separated fields of the
	// remainder.
	KindFields
)

// Rule is an immutable pattern that recognizes one action.
//
// Prefix, Separator and Second are literal text compared without regard to
// ASCII case. Arguments keep the case the user typed.
type Rule struct {
	Action    Action
	Kind      Kind
	Prefix    string
	Separator string
	Second    string
	Usage     string

	// Command is the shell command bound to an alias rule.
	Command string

	// parse post-processes extracted arguments, typically converting numeric
	// text. Returning false turns the match into a non-match.
	parse func(*Parsed) bool
}

// Match tries the rule against a trimmed input line.
func (r Rule) Match(line string) (Parsed, bool) {
	if r.Kind == KindExact {
		if !strings.EqualFold(line, r.Prefix) {
			return Parsed{}, false
		}
		p := Parsed{Action: r.Action}
		if r.Command != "" {
			p.Args = []string{r.Command}
		}
		return p, true
	}

	rest, ok := cutPrefixFold(line, r.Prefix)
	if !ok {
		return Parsed{}, false
	}

	args, ok := r.extract(rest)
	if !ok {
		return Parsed{}, false
	}

	p := Parsed{Action: r.Action, Args: args}
	if r.parse != nil && !r.parse(&p) {
		return Parsed{}, false
	}
	return p, true
}

func (r Rule) extract(rest string) ([]string, bool) {
	switch r.Kind {
	case KindRest:
		return []string{strings.TrimSpace(rest)}, true

	case KindSplit:
		left, right, ok := cutFold(rest, r.Separator)
		if !ok {
			return nil, false
		}
		return []string{strings.TrimSpace(left), strings.TrimSpace(right)}, true

	case KindQuoted:
		inner, ok := unquote(strings.TrimSpace(rest))
		if !ok {
			return nil, false
		}
		return []string{strings.TrimSpace(inner)}, true

	case KindQuotedPair:
		body, ok := strings.CutPrefix(strings.TrimSpace(rest), `"`)
		if !ok {
			return nil, false
		}
		first, second, ok := cutFold(body, `"`+r.Separator)
		if !ok {
			return nil, false
		}
		return []string{strings.TrimSpace(first), strings.TrimSpace(second)}, true

	case KindQuotedLead:
		body, ok := strings.CutPrefix(strings.TrimSpace(rest), `"`)
		if !ok {
			return nil, false
		}
		first, after, ok := strings.Cut(body, `"`)
		if !ok {
			return nil, false
		}
		second, ok := cutPrefixFold(strings.TrimSpace(after), r.Separator)
		if !ok {
			return nil, false
		}
		return []string{first, strings.TrimSpace(second)}, true

	case KindQuotedSplit:
		left, right, ok := cutFold(strings.TrimSpace(rest), r.Separator)
		if !ok {
			return nil, false
		}
		first, ok := unquote(strings.TrimSpace(left))
		if !ok {
			return nil, false
		}
		return []string{strings.TrimSpace(first), strings.TrimSpace(right)}, true

	case KindCompound:
		left, replacement, ok := cutFold(rest, r.Separator)
		if !ok {
			return nil, false
		}
		dir, pattern, ok := cutFold(strings.TrimSpace(left), r.Second)
		if !ok {
			return nil, false
		}
		pattern, ok = unquote(strings.TrimSpace(pattern))
		if !ok {
			return nil, false
		}
		replacement, ok = unquote(strings.TrimSpace(replacement))
		if !ok {
			return nil, false
		}
		return []string{strings.TrimSpace(dir), pattern, replacement}, true

	case KindFields:
		fields := strings.Fields(rest)
		if len(fields) < 2 {
			return nil, false
		}
		return fields[:2], true
	}

	return nil, false
}

// parseLength converts the single argument into a non-negative length.
// A single leading '+' is accepted.
func parseLength(p *Parsed) bool {
	n, err := strconv.ParseUint(strings.TrimPrefix(p.Arg(0), "+"), 10, strconv.IntSize-1)
	if err != nil {
		return false
	}
	p.Numbers = []int{int(n)}
	return true
}

// parseDimensions converts a "<W>x<H>" second argument into width and height.
func parseDimensions(p *Parsed) bool {
	w, h, ok := cutFold(p.Arg(1), "x")
	if !ok {
		return false
	}
	width, err := strconv.ParseUint(strings.TrimSpace(w), 10, 32)
	if err != nil {
		return false
	}
	height, err := strconv.ParseUint(strings.TrimSpace(h), 10, 32)
	if err != nil {
		return false
	}
	p.Args = p.Args[:1]
	p.Numbers = []int{int(width), int(height)}
	return true
}

// unquote strips one pair of surrounding double quotes.
func unquote(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	return s[1 : len(s)-1], true
}

// cutPrefixFold is strings.CutPrefix ignoring ASCII case.
func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

// cutFold is strings.Cut ignoring ASCII case. The separator is located in
// an ASCII-lowered copy so byte offsets stay valid for the original.
func cutFold(s, sep string) (before, after string, found bool) {
	i := strings.Index(lowerASCII(s), lowerASCII(sep))
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
