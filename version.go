package ideastash

import _ "embed"

// Version is the release of the library and the ideastash command.
//
//go:embed VERSION
var Version string
