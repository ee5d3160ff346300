package types

// Version is overwritten at build time via -ldflags
var Version = "dev"

// ServiceName is used in logs, health responses and report footers
const ServiceName = "rankguard"
