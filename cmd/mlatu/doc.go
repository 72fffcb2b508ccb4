/*
Package main provides the mlatu command line tool: a front end driver that
scans, lays out and parses mlatu sources, plus an interactive REPL for
exploring fragments and name resolution.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mlatu.cli'.
func tracer() tracing.Trace {
	return tracing.Select("mlatu.cli")
}
