package common

// Version is the service version, overridden at build time via ldflags.
var Version = "dev"

// PackageName identifies the service in logs and metrics.
const PackageName = "sui-proxy"
