/*
Package config loads the optional project file for remodel.

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
- Finds .remodelrc.{yaml,yml,hcl,json} in the working directory
- Picks a parser by file extension
- Rejects unknown fields, transports and log categories
- Fills in defaults (suffix "value", in-process transport, 64 open files)

Command-line flags are applied on top of the loaded file by the CLI, so a
missing file behaves exactly like Default().

🔍 Example:

	suffix: value
	default_includes: [Equality]
	exclude: ["vendor/**"]
	workers: 4
	transport: subprocess
	log:
	  categories: [info, error, performance]
	  minimal_level: 1
*/
package config
