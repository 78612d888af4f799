package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/attestia/sui-proxy/api"
	"github.com/attestia/sui-proxy/govtapi"
	"github.com/attestia/sui-proxy/metrics"
	"github.com/attestia/sui-proxy/suicli"
)

// maxBodySize is the maximum allowed request body size (1MB).
const maxBodySize = 1024 * 1024

// CommandRunner executes a Sui CLI invocation. Implemented by suicli.Runner.
type CommandRunner interface {
	Run(ctx context.Context, args []string, timeout time.Duration) suicli.CommandResult
}

// PANVerifier proxies a PAN verification call to the government API.
// Implemented by govtapi.Client.
type PANVerifier interface {
	VerifyPAN(ctx context.Context, body []byte) (*govtapi.UpstreamResponse, error)
}

// Handler translates inbound proxy requests into CLI invocations or
// government API calls and shapes every outcome into the uniform envelope.
// No handler lets an error escape as an unhandled fault.
type Handler struct {
	runner CommandRunner
	govt   PANVerifier
	log    *slog.Logger
}

// NewHandler creates a request handler with the given collaborators.
func NewHandler(runner CommandRunner, govt PANVerifier, log *slog.Logger) *Handler {
	return &Handler{
		runner: runner,
		govt:   govt,
		log:    log,
	}
}

// HandleHealth reports service liveness to the enclave-side caller.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, api.HealthResponse{Status: "healthy", Service: "sui-proxy"})
}

// HandleActiveAddress proxies `sui client active-address`.
func (h *Handler) HandleActiveAddress(w http.ResponseWriter, r *http.Request) {
	h.runCommand(w, r, "active-address", suicli.ActiveAddressArgs(), suicli.QueryTimeout, false)
}

// HandleGas proxies `sui client gas`.
func (h *Handler) HandleGas(w http.ResponseWriter, r *http.Request) {
	h.runCommand(w, r, "gas", suicli.GasArgs(), suicli.QueryTimeout, false)
}

// HandleCall validates a contract call request and proxies `sui client call`.
// Validation failures are rejected before any subprocess is spawned.
func (h *Handler) HandleCall(w http.ResponseWriter, r *http.Request) {
	var req api.CallRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	args, err := suicli.BuildCallArgs(&req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.runCommand(w, r, "call", args, suicli.TxTimeout, true)
}

// HandlePTB proxies `sui client ptb` with opaque sub-command descriptors.
func (h *Handler) HandlePTB(w http.ResponseWriter, r *http.Request) {
	var req api.PTBRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	h.runCommand(w, r, "ptb", suicli.BuildPTBArgs(&req), suicli.TxTimeout, true)
}

// HandlePANVerify forwards a PAN verification body to the government API and
// passes the upstream status and body back unchanged. Credential and
// authentication failures surface as their own envelopes instead of being
// masked as generic server errors.
func (h *Handler) HandlePANVerify(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		h.writeError(w, &api.InvalidRequestError{Reason: "failed to read request body"})
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		h.writeError(w, &api.InvalidRequestError{Reason: "request body is required"})
		return
	}

	upstream, err := h.govt.VerifyPAN(r.Context(), body)
	if err != nil {
		h.writeError(w, err)
		return
	}

	metrics.VerificationsTotal.WithLabelValues(fmt.Sprintf("%dxx", upstream.StatusCode/100)).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(upstream.StatusCode)
	w.Write(upstream.Body)
}

// runCommand executes the CLI invocation and writes the uniform envelope.
// A failed command (non-zero exit, timeout, spawn failure) is still a
// successfully proxied operation and is reported with HTTP 200; 5xx statuses
// stay reserved for faults in the proxy itself.
func (h *Handler) runCommand(w http.ResponseWriter, r *http.Request, name string, args []string, timeout time.Duration, includeCommand bool) {
	result := h.runner.Run(r.Context(), args, timeout)

	outcome := "ok"
	if !result.Success {
		outcome = "error"
	}
	metrics.CommandsTotal.WithLabelValues(name, outcome).Inc()

	resp := api.CommandResponse{
		Success:    result.Success,
		Stdout:     result.Stdout,
		Stderr:     result.Stderr,
		Returncode: result.ExitCode,
	}
	if includeCommand {
		resp.Command = result.Command
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// decodeJSON parses a request body into dst. Numbers are kept as json.Number
// so argument values survive coercion with their exact textual form.
func (h *Handler) decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	decoder.UseNumber()
	if err := decoder.Decode(dst); err != nil {
		return &api.InvalidRequestError{Reason: fmt.Sprintf("invalid JSON body: %v", err)}
	}
	return nil
}

// writeError is the single boundary adapter from the error taxonomy to HTTP
// statuses and envelopes: validation errors map to 400, missing credentials
// to 503, rejected upstream authentication to 502 with the upstream detail
// attached, anything unexpected to 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var invalidErr *api.InvalidRequestError
	var authErr *govtapi.AuthError

	var status int
	resp := api.ErrorResponse{Error: err.Error()}

	switch {
	case errors.As(err, &invalidErr):
		status = http.StatusBadRequest
	case errors.Is(err, govtapi.ErrCredentialsMissing):
		status = http.StatusServiceUnavailable
	case errors.As(err, &authErr):
		status = http.StatusBadGateway
		resp.Error = "government API authentication failed"
		resp.Details = authErr.Body
	default:
		status = http.StatusInternalServerError
	}

	h.log.Error("Request failed", "err", err, "status", status)
	h.writeJSON(w, status, resp)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error("Failed to encode response", "err", err)
	}
}
