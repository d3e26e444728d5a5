package internal

// Version contains the application version. It is overridden at build time
// via the linker flag -X.
var Version = "unknown"
