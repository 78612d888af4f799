// Package govtapi integrates with the government identity-verification API.
//
// The provider issues bearer tokens with a 24-hour nominal lifetime in
// exchange for an API key/secret pair sent as headers. TokenCache keeps the
// single process-wide token, treats it as stale one hour before expiry, and
// guarantees that concurrent demand produces exactly one refresh. Client
// attaches the token to verification calls and passes provider responses
// through to the caller verbatim, status included.
package govtapi
