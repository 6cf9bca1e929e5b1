// Package confloader loads layered configuration with koanf.
//
// Priority (highest to lowest):
//
//  1. Command-line flags (passed as a map)
//  2. Environment variables
//  3. Configuration file (YAML)
//  4. Values already present in the target struct
//
// Environment variables nest with a double underscore, so single
// underscores inside key names survive:
//
//	TUNEVAULT_DOWNLOAD__OUT_DIR=/music -> download.out_dir
package confloader
