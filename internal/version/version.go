package version

// Value is set via ldflags at release time.
var Value = "dev"
