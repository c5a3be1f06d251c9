/*
Package config manages configuration parsing and validation for shiftrc.

	            +-------------+
	            |   Config    |
	            |  (Phases)   |
	            +------+------+
	                   |
	    +---------+----+----+---------+
	    |         |         |         |
	+---+---+ +---+---+ +---+---+ +---+---+
	|  HCL  | | YAML  | | JSON  | | TOML  |
	| Parser| | Parser| | Parser| | Parser|
	+-------+ +-------+ +-------+ +-------+

🎯 Purpose:
- Loads migration configs in HCL, YAML, JSON, and TOML
- Validates phase and rule declarations before any file is read
- Compiles declarative rules into executable rewrite phases
- Probes bare .shiftrc files as YAML first, then HCL

🔄 Flow:
1. Load reads the file and picks a parser by extension
2. The parser decodes bytes into the shared Config model
3. Validate enforces structural invariants and applies defaults
4. Compile lowers phases and rules onto the rewrite engine

⚡ Key Responsibilities:
- Format abstraction behind one Parser interface
- Strict decoding (unknown keys are errors in every format)
- Exactly-one-of enforcement for pattern, literal, and call
- Early rejection of malformed regexes and glob filters

🤝 Interfaces:
- Parser: format-specific parsing, selected via Register/GetParser
- Config.Compile: the only bridge from declarations to rewrite.Phase

📝 Design Philosophy:
The config package is the source of truth for what a migration does.
Everything that can be wrong with a config fails here, before the
walker enumerates a single file. A config error aborts the run; it is
never demoted to a per-file failure.

🔍 Example:

	cfg, err := config.Load(ctx, ".shiftrc.hcl")
	if err != nil {
		return err
	}

	phases, err := cfg.Compile()
	if err != nil {
		return err
	}
*/
package config
