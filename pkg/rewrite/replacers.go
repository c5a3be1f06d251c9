package rewrite

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📝 Static replaces every match with the same text
func Static(text string) Replacer {
	return func(Match) (string, error) {
		return text, nil
	}
}

// 🗑️ Delete removes every match
func Delete() Replacer {
	return Static("")
}

// 🧩 Template builds the replacement from the match's capture groups.
// $1..$99 and ${n} expand to the numbered group, $0 to the whole
// match, and $$ to a literal dollar sign. A dollar sign before
// anything else is kept as is. Referencing a group the matcher never
// captured is an authoring mistake and fails the rule.
func Template(tmpl string) Replacer {
	return func(m Match) (string, error) {
		return expandTemplate(tmpl, m)
	}
}

func expandTemplate(tmpl string, m Match) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl))
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '$' || i+1 >= len(tmpl) {
			b.WriteByte(c)
			continue
		}

		next := tmpl[i+1]
		switch {
		case next == '$':
			b.WriteByte('$')
			i++
		case next == '{':
			end := strings.IndexByte(tmpl[i+2:], '}')
			if end < 0 {
				return "", errors.Errorf("template %q: unclosed ${ at offset %d", tmpl, i)
			}
			n, ok := parseGroupNum(tmpl[i+2 : i+2+end])
			if !ok {
				return "", errors.Errorf("template %q: ${%s} is not a group number", tmpl, tmpl[i+2:i+2+end])
			}
			if n >= len(m.Groups) {
				return "", errors.Errorf("template %q: group $%d not captured (match has %d groups)", tmpl, n, len(m.Groups))
			}
			b.WriteString(m.Groups[n])
			i += 2 + end
		case next >= '0' && next <= '9':
			j := i + 1
			for j < len(tmpl) && tmpl[j] >= '0' && tmpl[j] <= '9' && j-i <= 2 {
				j++
			}
			n, _ := parseGroupNum(tmpl[i+1 : j])
			if n >= len(m.Groups) {
				return "", errors.Errorf("template %q: group $%d not captured (match has %d groups)", tmpl, n, len(m.Groups))
			}
			b.WriteString(m.Groups[n])
			i = j - 1
		default:
			b.WriteByte('$')
		}
	}
	return b.String(), nil
}

func parseGroupNum(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}
