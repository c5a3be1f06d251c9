/*
Package rewrite implements the rule engine: ordered, guarded text
rewrites composed into phases.

	+-----------+     +-----------+     +-----------+
	|  Matcher  | --> |   Rule    | --> |   Phase   |
	| (find)    |     | (rewrite) |     | (ordered) |
	+-----------+     +-----------+     +-----------+

🎯 Purpose:
- Find pattern occurrences (regex, literal, balanced call sites)
- Rewrite each occurrence through a replacer (template or function)
- Gate rules on file-level guards evaluated against original content
- Compose rules into ordered phases with per-rule outcomes

🔄 Flow:
1. Matcher.Find enumerates non-overlapping occurrences left to right
2. Rule.Apply splices replacements, reports whether it fired
3. Phase.Apply threads the text through its rules in declared order
4. RuleError carries phase and rule identity up to the runner

⚡ Key Responsibilities:
- Pure text transformation; no file I/O, no state between calls
- Guard semantics: guards see the loaded content, never the partially
  rewritten text, so rule order cannot flip a guard's decision
- Convergence: a well-formed rule reaches a fixed point after one
  application; CheckConvergence verifies that on samples

🤝 Interfaces:
- Matcher: pluggable pattern engine behind Rule
- Replacer, Guard: plain funcs so rule sets read like data

📝 Design Philosophy:
Rules are data. A migration is a list of phases, each a list of rules,
built either from a config file (pkg/config) or from the builders in
this package. The engine never decides to write anything; it only
answers "what would this text become". Everything effectful lives in
pkg/migrate and pkg/walker.

🔍 Example:

	phase := rewrite.NewPhase("imports",
	    rewrite.ReplaceLiteral("luxon-datetime",
	        "import { DateTime } from '@acme/domain/datetime'",
	        "import { DateTime } from 'luxon'",
	    ).When(rewrite.NotContains("from 'luxon'")),
	)
	out, outcomes, err := phase.Apply(content, content)
*/
package rewrite
