/*
Package httpserver implements the HTTP surface of the Sui host proxy.

The proxy runs on the host next to an enclave that has no process-spawning or
outbound-network privileges. The enclave calls these endpoints to invoke the
Sui CLI and to reach the government identity-verification API.

# Endpoints

  - GET  /health - service health for the enclave-side caller
  - GET  /sui/client/active-address - active Sui address
  - GET  /sui/client/gas - gas coins
  - POST /sui/client/call - Move contract call
  - POST /sui/client/ptb - programmable transaction block
  - POST /govt-api/pan/verify - PAN verification pass-through
  - GET  /livez, /readyz, /drain, /undrain - diagnostics

# Response contract

Every endpoint answers with a JSON body. CLI endpoints use the uniform
{success, stdout, stderr, returncode} envelope; a failed subcommand is still
HTTP 200 with success=false, since the proxying itself worked. The PAN
verification endpoint passes the provider's status and body through
unchanged, so callers can distinguish provider rejections (pass-through
status) from proxy faults (5xx). Handler errors are mapped to envelopes in a
single boundary adapter; no request ever crashes the server process.
*/
package httpserver
