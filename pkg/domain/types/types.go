package types

// Version is the application version, overridden at build time via ldflags
var Version = "dev"

// AppName is the CLI binary name
const AppName = "shiprel"
