// Package config handles archive configuration.
package config

const (
	// DefaultDir is the default archive directory name.
	DefaultDir = "archive"
	// DefaultIncomingDir is the default watch directory for new captures.
	DefaultIncomingDir = "incoming"
	// DefaultExtension is the extension captures are stored under.
	DefaultExtension = ".html"
	// DefaultDockerImage runs the page capture.
	DefaultDockerImage = "capsulecode/singlefile"
	// DefaultCaptureTimeout bounds a single page capture as a duration string.
	DefaultCaptureTimeout = "120s"
	// DefaultRequestInterval is the minimum delay between captures.
	DefaultRequestInterval = "2s"
	// DefaultMaxRetries is the number of capture attempts per URL.
	DefaultMaxRetries = 3

	// DefaultTotalBytes is the target filename length, extension included.
	DefaultTotalBytes = 150
	// DefaultCeilingBytes is the hard filesystem filename limit.
	DefaultCeilingBytes = 255
	// DefaultMinContent is the smallest content slice worth keeping in a stem.
	DefaultMinContent = 12

	// ConfigFileName is the name of the config file within the archive directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 1
)
