package rewrite

import (
	"regexp"
	"strings"
)

// Guards gate a rule on the state of the whole file. They combine
// with Rule.When:
//
//	ReplaceLiteral("swap-import", oldImport, newImport).
//	    When(All(Contains("PaymentInfo"), NotContains("PaymentMethod")))

// Contains passes when the file holds s
func Contains(s string) Guard {
	return func(content string) bool {
		return strings.Contains(content, s)
	}
}

// NotContains passes when the file does not hold s
func NotContains(s string) Guard {
	return func(content string) bool {
		return !strings.Contains(content, s)
	}
}

// Matches passes when re matches anywhere in the file
func Matches(re *regexp.Regexp) Guard {
	return func(content string) bool {
		return re.MatchString(content)
	}
}

// All passes when every guard passes
func All(guards ...Guard) Guard {
	return func(content string) bool {
		for _, g := range guards {
			if !g(content) {
				return false
			}
		}
		return true
	}
}

// Any passes when at least one guard passes
func Any(guards ...Guard) Guard {
	return func(content string) bool {
		for _, g := range guards {
			if g(content) {
				return true
			}
		}
		return false
	}
}

// Not inverts a guard
func Not(g Guard) Guard {
	return func(content string) bool {
		return !g(content)
	}
}
