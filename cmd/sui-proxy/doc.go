// Command sui-proxy runs the host-side HTTP gateway for an enclave without
// process-spawning or outbound-network privileges. It translates inbound
// JSON requests into Sui CLI subprocess invocations and proxies PAN
// verification calls to the government KYC API, managing the shared bearer
// token on the enclave's behalf.
package main
