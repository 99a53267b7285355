// Package main provides the entry point for the registerscan CLI.
//
// registerscan crawls published registers of members' financial
// interests and extracts structured disclosure records from the
// semi-structured HTML pages.
//
// Usage:
//
//	registerscan crawl
//	registerscan check register_of_interests_2023-06-12.json
//
// See --help for all available options.
package main

// main is the entry point for registerscan.
func main() {
	Execute()
}
