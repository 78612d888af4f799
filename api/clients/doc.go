// Package clients provides the enclave-side HTTP client for the sui-proxy
// API.
package clients
