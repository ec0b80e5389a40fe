package config

const (
	// DefaultProjectPath is the directory outputs are written under
	DefaultProjectPath = "."
	// DefaultConfigFile is the YAML config file looked up in the project path
	DefaultConfigFile = "gtp.yaml"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultScratchLimit is the byte budget of the scratch arena shared by a run
	DefaultScratchLimit = 1 << 20
	// DefaultLogLevel is the default zap level
	DefaultLogLevel = "warn"
	// DefaultDatabasePrefix names the database the mysql suite provisions
	DefaultDatabasePrefix = "testing"
)

// DefaultDatabase is the MySQL connection used when nothing else is configured
var DefaultDatabase = Database{
	Host: "127.0.0.1",
	Port: "3306",
	User: "root",
}
