package utils

// Well-known file names consulted by the packer.
const (
	// GitIgnoreFileName is the version-control ignore file read from the root directory.
	GitIgnoreFileName = ".gitignore"
	// ToolIgnoreFileName is the repopack-specific ignore file, always read when present.
	ToolIgnoreFileName = ".repopackignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// ConfigFileName is the configuration file looked up in the working directory.
	ConfigFileName = "repopack.config.json"
	// YAMLConfigFileName is the YAML configuration file consulted when no JSON file exists.
	YAMLConfigFileName = "repopack.config.yaml"
	// GlobalConfigDirectoryName is the directory under the XDG config home holding the global configuration.
	GlobalConfigDirectoryName = "repopack"
	// ApplicationName is used in banners and messages.
	ApplicationName = "Repopack"
)

// LoggerInitializationFailedMessageFormat is used when the zap logger cannot be built.
const LoggerInitializationFailedMessageFormat = "initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes the error reported when a command fails.
const ApplicationExecutionFailedMessage = "repopack failed"
