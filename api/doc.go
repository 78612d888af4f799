// Package api defines the request and response types shared between the
// proxy server and its clients, along with the validation error type used
// across the request-translation layer.
package api
