/*
Package config manages configuration parsing and validation for tidy.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	   +---------+-----+-----+---------+
	   |         |           |         |
	+--+--+   +--+--+     +--+--+   +--+--+
	| YAML|   | JSON|     | HCL |   | TOML|
	+-----+   +-----+     +-----+   +-----+

🎯 Purpose:
- Loads an optional config file next to the folder being sorted
- Validates ignore globs, layout, extra extensions and log level
- Turns the config into sorter options

🔄 Flow:
1. Reads configuration from file (format picked by extension)
2. Rejects unknown fields
3. Validates and fills in defaults
4. Builds sorter.Options via SorterOptions

🔍 Example:

	cfg, err := config.LoadOptional(ctx, ".tidy.yaml")
	if err != nil {
		return err
	}
	opts, err := cfg.SorterOptions()
*/
package config
