// Package config provides configuration structures and utilities for
// registerscan. It defines the main options for crawling a register,
// quality gating, and output generation.
package config
