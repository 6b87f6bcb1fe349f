package ports

// AnalysisServer defines the interface for a transport that accepts
// analysis requests and serves results until stopped.
type AnalysisServer interface {
	// Start starts serving. It returns once the listener is up.
	Start() error

	// Stop shuts the transport down.
	Stop() error
}
