package suicli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/attestia/sui-proxy/api"
)

const (
	// DefaultBin is the Sui CLI binary name, resolved via PATH.
	DefaultBin = "sui"

	// DefaultGasBudget is applied when a request does not set gas_budget.
	DefaultGasBudget = "10000000"

	// QueryTimeout bounds read-only client queries.
	QueryTimeout = 10 * time.Second

	// TxTimeout bounds transaction-submitting invocations.
	TxTimeout = 30 * time.Second

	// VersionCheckTimeout bounds the startup version banner check.
	VersionCheckTimeout = 10 * time.Second
)

// ActiveAddressArgs is the argument vector for querying the active address.
func ActiveAddressArgs() []string {
	return []string{"client", "active-address"}
}

// GasArgs is the argument vector for listing gas coins.
func GasArgs() []string {
	return []string{"client", "gas"}
}

// BuildCallArgs translates a contract call request into a `client call`
// argument vector. Flag ordering is fixed: package, module, function,
// gas-budget, then one --type-args pair per type argument and one --args
// pair per argument, both preserving caller order.
func BuildCallArgs(req *api.CallRequest) ([]string, error) {
	if req.PackageID == "" {
		return nil, &api.InvalidRequestError{Reason: "package_id is required"}
	}
	if req.Module == "" {
		return nil, &api.InvalidRequestError{Reason: "module is required"}
	}
	if req.Function == "" {
		return nil, &api.InvalidRequestError{Reason: "function is required"}
	}

	args := []string{
		"client", "call",
		"--package", req.PackageID,
		"--module", req.Module,
		"--function", req.Function,
		"--gas-budget", gasBudgetOrDefault(req.GasBudget),
	}
	for _, typeArg := range req.TypeArgs {
		args = append(args, "--type-args", typeArg)
	}
	for _, arg := range req.Args {
		args = append(args, "--args", formatArg(arg))
	}
	return args, nil
}

// BuildPTBArgs translates a programmable transaction block request into a
// `client ptb` argument vector. Each sub-command descriptor becomes one
// --assign pair in caller order.
//
// TODO: map sub-command descriptors onto the real ptb grammar (--move-call,
// --transfer-objects, --split-coins, ...) instead of a blanket --assign.
func BuildPTBArgs(req *api.PTBRequest) []string {
	args := []string{
		"client", "ptb",
		"--gas-budget", gasBudgetOrDefault(req.GasBudget),
	}
	for _, command := range req.Commands {
		args = append(args, "--assign", command)
	}
	return args
}

func gasBudgetOrDefault(budget json.Number) string {
	if budget.String() == "" {
		return DefaultGasBudget
	}
	return budget.String()
}

// formatArg coerces a decoded JSON value to a single argument token. Request
// bodies are decoded with json.Decoder.UseNumber, so numbers arrive as
// json.Number and keep their exact textual form.
func formatArg(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case json.Number:
		return value.String()
	case bool:
		return strconv.FormatBool(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", value)
	}
}
