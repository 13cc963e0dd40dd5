package config

// Application constants
const (
	AppName    = "protclean"
	AppVersion = "1.0.0"

	// Identifier markers used by the cleaning stages
	DefaultContaminantMarker  = "contam"
	DefaultRepIDUnknownMarker = "RepID=unknown"
	DefaultRewritePrefix      = "k77"
	DefaultRepIDPattern       = `RepID=([^|]+)`

	// Default file locations
	DefaultLogsDir     = "logs"
	DefaultLogFileName = "protclean.log"
)

// DefaultMetagenomeBlacklist lists the identifier fragments of known
// uninformative metagenome entries. Any identifier containing one of
// these substrings is removed by the blacklist stage.
var DefaultMetagenomeBlacklist = []string{
	"W1WC08_9ZZZZ", "W1WM01_9ZZZZ", "W1Y9K7_9ZZZZ", "W1YGV0_9ZZZZ",
	"W1YKP9_9ZZZZ", "W1YP67_9ZZZZ", "W1YRV8_9ZZZZ", "A0A0F9P276_9ZZZZ",
	"J9G8E8_9ZZZZ", "J9GD12_9ZZZZ",
}
