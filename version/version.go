package version

// Values are overwritten at build time via -ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	Date      = "unknown"
	BuiltBy   = "local"
	GoVersion = "unknown"

	FullVersion = composeFullVersion()
)

func composeFullVersion() string {
	ret := Version
	if Commit != "none" {
		ret += " (" + Commit + ")"
	}
	return ret
}
