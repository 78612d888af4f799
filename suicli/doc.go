// Package suicli invokes the Sui command-line client as a subprocess and
// translates inbound requests into argument vectors.
//
// The runner never assembles a shell string: arguments are passed as discrete
// tokens, which removes the argument-injection ambiguity of join-then-split
// command construction. Every invocation is bounded by a timeout; on expiry
// the subprocess is forcibly terminated and the result reports
// TimedOutExitCode. Failures of any kind (spawn, timeout, non-zero exit) are
// reported through CommandResult so callers always receive a structured
// outcome.
package suicli
