package api

import "encoding/json"

// CommandResponse is the uniform envelope returned for every proxied Sui CLI
// invocation. Success mirrors a zero exit code; stdout and stderr are
// whitespace-trimmed.
type CommandResponse struct {
	Success    bool   `json:"success"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	Returncode int    `json:"returncode"`

	// Command is the reconstructed command line, included on call and ptb
	// responses so the enclave side can see exactly what was executed.
	Command string `json:"command,omitempty"`
}

// CallRequest describes a Move contract call to be translated into a
// `sui client call` invocation.
type CallRequest struct {
	PackageID string `json:"package_id"`
	Module    string `json:"module"`
	Function  string `json:"function"`

	// Args are function arguments in caller order. Each is coerced to a
	// single argument token; numbers and booleans are accepted.
	Args []any `json:"args,omitempty"`

	// TypeArgs are Move type arguments in caller order.
	TypeArgs []string `json:"type_args,omitempty"`

	// GasBudget defaults to DefaultGasBudget when empty. Both JSON numbers
	// and numeric strings are accepted.
	GasBudget json.Number `json:"gas_budget,omitempty"`
}

// PTBRequest describes a programmable transaction block built from opaque
// sub-command descriptors, each translated to one flag/value pair.
type PTBRequest struct {
	Commands  []string    `json:"commands,omitempty"`
	GasBudget json.Number `json:"gas_budget,omitempty"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// ErrorResponse is the uniform error envelope. Success is always false; it is
// included so callers of the CLI endpoints can check a single flag regardless
// of outcome.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// InvalidRequestError reports an inbound request rejected during validation.
// Requests failing this way never reach a subprocess or an upstream call.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return e.Reason
}
