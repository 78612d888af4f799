package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/attestia/sui-proxy/api"
)

// ProxyClient is the enclave-side client for the sui-proxy HTTP API. The
// enclave has no process-spawning or outbound-network privileges, so every
// Sui CLI invocation and government API call goes through this client.
type ProxyClient struct {
	// ServerAddr is the base URL of the proxy, e.g. "http://127.0.0.1:9999".
	ServerAddr string

	// HTTPClient defaults to http.DefaultClient when nil.
	HTTPClient *http.Client
}

func (p *ProxyClient) httpClient() *http.Client {
	if p.HTTPClient != nil {
		return p.HTTPClient
	}
	return http.DefaultClient
}

// Health checks proxy liveness.
func (p *ProxyClient) Health() (*api.HealthResponse, error) {
	var health api.HealthResponse
	if err := p.getJSON("/health", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// ActiveAddress returns the envelope for `sui client active-address`.
func (p *ProxyClient) ActiveAddress() (*api.CommandResponse, error) {
	var envelope api.CommandResponse
	if err := p.getJSON("/sui/client/active-address", &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

// Gas returns the envelope for `sui client gas`.
func (p *ProxyClient) Gas() (*api.CommandResponse, error) {
	var envelope api.CommandResponse
	if err := p.getJSON("/sui/client/gas", &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

// Call executes a Move contract call through the proxy.
func (p *ProxyClient) Call(req *api.CallRequest) (*api.CommandResponse, error) {
	var envelope api.CommandResponse
	if err := p.postJSON("/sui/client/call", req, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

// PTB executes a programmable transaction block through the proxy.
func (p *ProxyClient) PTB(req *api.PTBRequest) (*api.CommandResponse, error) {
	var envelope api.CommandResponse
	if err := p.postJSON("/sui/client/ptb", req, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

// VerifyPAN forwards a verification body through the proxy and returns the
// government API status and body verbatim. A non-success status is not an
// error here: the caller decides how to treat provider rejections.
func (p *ProxyClient) VerifyPAN(body []byte) (int, []byte, error) {
	resp, err := p.httpClient().Post(p.ServerAddr+"/govt-api/pan/verify", "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("could not request verification endpoint: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("could not read verification response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

func (p *ProxyClient) getJSON(path string, out any) error {
	resp, err := p.httpClient().Get(p.ServerAddr + path)
	if err != nil {
		return fmt.Errorf("could not request %s: %w", path, err)
	}
	defer resp.Body.Close()
	return p.decode(path, resp, out)
}

func (p *ProxyClient) postJSON(path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	resp, err := p.httpClient().Post(p.ServerAddr+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("could not request %s: %w", path, err)
	}
	defer resp.Body.Close()
	return p.decode(path, resp, out)
}

func (p *ProxyClient) decode(path string, resp *http.Response, out any) error {
	if resp.StatusCode != http.StatusOK {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("%s returned non-200 response: %d", path, resp.StatusCode)
		}
		return fmt.Errorf("%s returned error %d: %s", path, resp.StatusCode, string(bodyBytes))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not parse %s response: %w", path, err)
	}
	return nil
}
