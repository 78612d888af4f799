package suicli

import (
	"encoding/json"
	"testing"

	"github.com/attestia/sui-proxy/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCallArgs_FlagOrdering(t *testing.T) {
	req := &api.CallRequest{
		PackageID: "0xabc",
		Module:    "attestation",
		Function:  "record",
		Args:      []any{"0x1", json.Number("42"), true},
		TypeArgs:  []string{"0x2::sui::SUI", "0x3::coin::COIN"},
		GasBudget: json.Number("5000000"),
	}

	args, err := BuildCallArgs(req)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"client", "call",
		"--package", "0xabc",
		"--module", "attestation",
		"--function", "record",
		"--gas-budget", "5000000",
		"--type-args", "0x2::sui::SUI",
		"--type-args", "0x3::coin::COIN",
		"--args", "0x1",
		"--args", "42",
		"--args", "true",
	}, args)
}

func TestBuildCallArgs_GasBudgetDefault(t *testing.T) {
	req := &api.CallRequest{
		PackageID: "0xabc",
		Module:    "m",
		Function:  "f",
	}

	args, err := BuildCallArgs(req)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"client", "call",
		"--package", "0xabc",
		"--module", "m",
		"--function", "f",
		"--gas-budget", DefaultGasBudget,
	}, args)
}

func TestBuildCallArgs_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		req    *api.CallRequest
		reason string
	}{
		{"missing package", &api.CallRequest{Module: "m", Function: "f"}, "package_id is required"},
		{"missing module", &api.CallRequest{PackageID: "0x1", Function: "f"}, "module is required"},
		{"missing function", &api.CallRequest{PackageID: "0x1", Module: "m"}, "function is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := BuildCallArgs(tt.req)
			assert.Nil(t, args)

			var invalidErr *api.InvalidRequestError
			require.ErrorAs(t, err, &invalidErr)
			assert.Equal(t, tt.reason, invalidErr.Reason)
		})
	}
}

func TestBuildPTBArgs(t *testing.T) {
	req := &api.PTBRequest{
		Commands:  []string{"coin s", "result r"},
		GasBudget: json.Number("7000000"),
	}

	args := BuildPTBArgs(req)
	assert.Equal(t, []string{
		"client", "ptb",
		"--gas-budget", "7000000",
		"--assign", "coin s",
		"--assign", "result r",
	}, args)
}

func TestBuildPTBArgs_Empty(t *testing.T) {
	args := BuildPTBArgs(&api.PTBRequest{})
	assert.Equal(t, []string{"client", "ptb", "--gas-budget", DefaultGasBudget}, args)
}

func TestFormatArg(t *testing.T) {
	assert.Equal(t, "plain", formatArg("plain"))
	assert.Equal(t, "12345678901234567890", formatArg(json.Number("12345678901234567890")))
	assert.Equal(t, "false", formatArg(false))
	assert.Equal(t, "1.5", formatArg(1.5))
	assert.Equal(t, "", formatArg(nil))
}
