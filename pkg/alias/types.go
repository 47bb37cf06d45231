// Package alias loads user-defined phrase aliases from YAML packs.
//
// A pack binds literal phrases to shell commands:
//
//	name: git-helpers
//	requires: ">= 0.1.0"
//	aliases:
//	  - phrase: show git status
//	    run: git status --short
//	    description: short git status
//
// Each alias becomes an exact-phrase rule appended after the built-in rules.
package alias

import "time"

// Status represents the compatibility status of a pack.
type Status string

const (
	StatusCompatible   Status = "Compatible"
	StatusIncompatible Status = "Incompatible"
	StatusError        Status = "Error"
)

// Source is where a pack was found.
type Source string

const (
	SourceUser    Source = "user"
	SourceProject Source = "project"
)

// Alias binds a phrase to a shell command.
type Alias struct {
	Phrase      string `yaml:"phrase"`
	Run         string `yaml:"run"`
	Description string `yaml:"description"`
}

// Manifest is the parsed contents of a pack file.
type Manifest struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Requires    string  `yaml:"requires"` // SemVer constraint on the tai version
	Aliases     []Alias `yaml:"aliases"`
}

// Pack is one discovered alias file.
type Pack struct {
	Name     string
	Path     string
	Source   Source
	Status   Status
	Manifest *Manifest
	Error    error
}

// Dir is a directory scanned for packs.
type Dir struct {
	Path   string
	Source Source
}

// Result contains the outcome of a scan.
type Result struct {
	// Packs is every pack file found, in scan order.
	Packs []*Pack
	// Scanned is the number of pack files read.
	Scanned int
	// Duration is the time taken to complete the scan.
	Duration time.Duration
}
