package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// ConfigFileName is the name of the local configuration file.
const ConfigFileName = ".fpr.yaml"

// GlobalConfigDirectoryName is the directory under the user home that holds
// the global configuration file.
const GlobalConfigDirectoryName = ".fpr"

// GlobalConfigFileName is the name of the global configuration file.
const GlobalConfigFileName = "config.yaml"

// LoggerInitializationFailedMessageFormat reports a logger construction failure.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage reports a fatal application error.
const ApplicationExecutionFailedMessage = "Application execution failed"
