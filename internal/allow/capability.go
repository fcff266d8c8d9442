// Package allow resolves @allow JSDoc capability grants for a query node by
// walking its ancestor chain outward until a grant or the file root.
package allow

// Capability is one of the closed set of gateable runtime behaviors. The
// jsdoc parser records any @allow word, known or not; an unknown name is
// simply never matched, because gates only ask about these constants.
type Capability string

const (
	CapDOM       Capability = "dom"
	CapTimers    Capability = "timers"
	CapConsole   Capability = "console"
	CapNet       Capability = "net"
	CapProcess   Capability = "process"
	CapMutations Capability = "mutations"
	CapThrows    Capability = "throws"
)

// knownCapabilities backs IsKnown; only these seven gate anything.
var knownCapabilities = map[Capability]bool{
	CapDOM:       true,
	CapTimers:    true,
	CapConsole:   true,
	CapNet:       true,
	CapProcess:   true,
	CapMutations: true,
	CapThrows:    true,
}

// IsKnown reports whether c is one of the seven recognized capabilities.
func IsKnown(c Capability) bool {
	return knownCapabilities[c]
}
