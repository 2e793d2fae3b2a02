package config

// Version is stamped by the release build over ldflags, see the magefile.
var Version = "development"
