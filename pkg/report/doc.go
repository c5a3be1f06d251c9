/*
Package report aggregates per-file outcomes into the summary of one
migration run.

	+-----------+       +-----------+       +------------+
	|  Builder  | ----> |  Report   | ----> | Formatters |
	| (collect) |       | (sealed)  |       | (text/json)|
	+-----------+       +-----------+       +------------+

🎯 Purpose:
- Collect FileResults from the runner, possibly from many goroutines
- Seal them into an immutable Report with stable ordering
- Render for humans (colored text) or machines (JSON)
- Preview pending rewrites as line diffs

🔄 Flow:
1. Runner creates a Builder per run (fresh run id)
2. Workers Add results in whatever order they finish
3. Finalize sorts by path, counts statuses, tallies phase fires
4. A Formatter renders the sealed report

⚡ Key Responsibilities:
- The Builder mutex is the only serialization point in parallel runs
- Reports never carry state into a later run
- Same corpus in, same report out, no matter the arrival order

📝 Design Philosophy:
The report is a value. Everything that varies between runs of the same
corpus (worker count, scheduling, arrival order) must be invisible in
the finalized report, or CI diffs against it become flaky.

🔍 Example:

	b := report.NewBuilder(tree.Root(), []string{"imports", "call-sites"})
	b.Add(report.FileResult{Path: "a.ts", Status: report.StatusWritten})
	r := b.Finalize()
	out, _ := (&report.TextFormatter{}).Format(r)
*/
package report
