/*
Package config manages run configuration parsing and validation for dirsum.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+-----+
	|   YAML    | |   HCL   | |   JSON    |
	|  Parser   | | Parser  | |  Parser   |
	+-----------+ +---------+ +-----------+

🎯 Purpose:
- Manages configuration loading and parsing
- Validates configuration values and applies defaults
- Resolves the artifact paths inside the output folder
- Supports multiple config formats

🔄 Flow:
1. Discover probes the default file names (or Load reads an explicit path)
2. The registered parser for the file extension decodes the bytes
3. Validate applies defaults and rejects unusable values
4. The validated config drives the pipeline

⚡ Key Responsibilities:
- Configuration parsing
- Default value management (input/output folders, thresholds, jobs)
- Ignore-pattern validation
- Format abstraction

🤝 Interfaces:
- Parser: format-specific parsing, selected by file extension

📝 Design Philosophy:
The config package is the source of truth for all run settings. CLI flags are
applied on top of the loaded config by the command layer; everything below the
command layer sees only a validated Config.
*/
package config
