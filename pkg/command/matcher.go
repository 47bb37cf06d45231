// Package command recognizes shell input lines.
//
// A Matcher holds an ordered, immutable rule table. Match classifies a
// trimmed line into exactly one action with its arguments, or reports that
// no rule applies. Matching never touches the filesystem or network.
package command

// Matcher classifies input lines against an ordered rule table.
type Matcher struct {
	rules []Rule
}

// NewMatcher creates a matcher over the built-in rules followed by extra.
func NewMatcher(extra ...Rule) *Matcher {
	rules := make([]Rule, 0, len(builtinRules)+len(extra))
	rules = append(rules, builtinRules...)
	rules = append(rules, extra...)
	return &Matcher{rules: rules}
}

// Match returns the first rule match for line. The line must already be
// trimmed of surrounding whitespace.
func (m *Matcher) Match(line string) (Parsed, bool) {
	for _, r := range m.rules {
		if p, ok := r.Match(line); ok {
			return p, true
		}
	}
	return Parsed{}, false
}

// Rules returns a copy of the rule table in match order.
func (m *Matcher) Rules() []Rule {
	rules := make([]Rule, len(m.rules))
	copy(rules, m.rules)
	return rules
}

// Usages returns the usage line of every rule in match order.
func (m *Matcher) Usages() []string {
	usages := make([]string, 0, len(m.rules))
	for _, r := range m.rules {
		usages = append(usages, r.Usage)
	}
	return usages
}

// Phrases returns the literal phrase or prefix of every rule, for use as
// line-editor completions.
func (m *Matcher) Phrases() []string {
	phrases := make([]string, 0, len(m.rules))
	seen := make(map[string]bool, len(m.rules))
	for _, r := range m.rules {
		if seen[r.Prefix] {
			continue
		}
		seen[r.Prefix] = true
		phrases = append(phrases, r.Prefix)
	}
	return phrases
}
