/*
Package migrate implements the runner: it walks the tree, pushes each
file through every phase, and writes back only what changed.

	+--------+     +---------+     +--------+
	| Walker | --> | Migrate | --> | Report |
	| (enum) |     | (apply) |     | (seal) |
	+--------+     +---------+     +--------+

🎯 Purpose:
- Orchestrate one migration run end to end
- Contain every per-file failure to that file's report row
- Keep re-runs safe: a converged tree reports all-unchanged

🔄 Flow:
1. Walk the tree once (sorted, filtered)
2. Per file: load, apply phases in order, compare, write on change
3. Record a FileResult per file, sequentially or from workers
4. Finalize the report

⚡ Key Responsibilities:
- File state machine: pending, loaded, transformed, then written,
  unchanged, or errored
- Error containment: a read, rule, or write failure marks the file
  errored and the run continues (FailFast opts out)
- No partial writes: the tree's atomic WriteFile is the only effect
- Parallel mode: errgroup with a worker limit; files are independent
  and the report builder is the single point of coordination

🤝 Interfaces:
- walker.Tree: where files come from and go to
- rewrite.Phase: what happens to their content
- report.Builder: where outcomes land

📝 Design Philosophy:
The runner decides nothing about text. It sequences phases the way the
config declared them and treats their output as opaque. Determinism
falls out of sorted walks and content comparison, not coordination.

🔍 Example:

	m, err := migrate.New(migrate.Options{
	    Tree:   tree,
	    Filter: walker.Filter{Include: cfg.Include},
	    Phases: phases,
	})
	if err != nil {
	    return err
	}
	rep, err := m.Run(ctx)
*/
package migrate
