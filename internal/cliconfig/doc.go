// Package cliconfig loads and validates configuration for the dbgcast
// CLI, with flag > environment > file > default precedence and optional
// live reload of the config file.
package cliconfig
