package rewrite

import (
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// Builders for the rule shapes that come up in every migration.
// They panic on bad patterns, like regexp.MustCompile, because they
// exist for hand-written rule sets where the pattern is a constant.

// ReplaceLiteral swaps an exact substring for another
func ReplaceLiteral(name, from, to string) Rule {
	return Rule{Name: name, Match: Literal(from), Replace: Static(to)}
}

// ReplaceRegex rewrites every regexp match through a template.
// Capture groups are available as $1..$n.
func ReplaceRegex(name, pattern, tmpl string) Rule {
	return Rule{Name: name, Match: MustRegex(pattern), Replace: Template(tmpl)}
}

// ReplaceCall rewrites balanced call sites of callee through a
// template; $1 is the callee, $2 the raw argument text
func ReplaceCall(name, callee, tmpl string) Rule {
	return Rule{Name: name, Match: Call(callee), Replace: Template(tmpl)}
}

// DeleteRegex removes every regexp match
func DeleteRegex(name, pattern string) Rule {
	return Rule{Name: name, Match: MustRegex(pattern), Replace: Delete()}
}

// RenameIdent renames a whole identifier, leaving longer names that
// merely contain it alone
func RenameIdent(name, from, to string) Rule {
	pattern := `\b` + regexp.QuoteMeta(from) + `\b`
	return Rule{Name: name, Match: MustRegex(pattern), Replace: Static(to)}
}

// CheckConvergence applies the rule twice to each sample and fails if
// the second pass still changes the text. A rule that keeps firing on
// its own output makes the whole migration non-idempotent, and this
// is the cheapest place to catch it.
func CheckConvergence(r Rule, samples ...string) error {
	if err := r.Validate(); err != nil {
		return err
	}
	for i, sample := range samples {
		once, _, err := r.Apply(sample, sample)
		if err != nil {
			return errors.Errorf("rule %q: sample %d: first application: %w", r.Name, i, err)
		}
		twice, _, err := r.Apply(once, once)
		if err != nil {
			return errors.Errorf("rule %q: sample %d: second application: %w", r.Name, i, err)
		}
		if twice != once {
			return errors.Errorf("rule %q does not converge on sample %d: rerunning it keeps rewriting its own output", r.Name, i)
		}
	}
	return nil
}
