// Package eav holds build metadata for the eav module.
package eav

// Version is the release version of the eav module and CLI.
const Version = "0.1.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/eav"
