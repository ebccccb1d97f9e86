// Package config provides the configuration system for csvscope.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (Config.Set)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← CSVSCOPE_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/csvscope/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The file may be TOML or YAML, chosen by extension. Either may pull in
// other files with an "@include" key.
//
// # Basic Usage
//
//	cfg := config.New(config.WithFile(path))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	_ = cfg.Set("layout.column_width", 14)
//
//	settings, err := cfg.Settings()
//	if err != nil {
//	    return err // *OptionError naming the bad setting
//	}
//
// # Configuration Files
//
//	# ~/.config/csvscope/config.toml
//	[csv]
//	delimiter = ";"
//	trim = "fields"
//
//	[layout]
//	column_width = 14
//
//	[theme]
//	value_bg = ["#002B36", "#72A0C1"]
//
// # Error Handling
//
//   - *OptionError: a setting holds a value that cannot be used
//   - *ParseError: a configuration file is malformed
//   - ErrFileNotFound: an explicitly requested file doesn't exist
package config
