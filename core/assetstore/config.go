package assetstore

// DefaultExtension is appended to keys to form document names.
const DefaultExtension = ".controller.yaml"

// Config selects and configures the document backend.
type Config struct {
	// Backend is one of file, bucket, database or redis.
	Backend string `mapstructure:"backend" default:"file"`
	// Root is the directory scanned by the file backend.
	Root string `mapstructure:"root" default:"controllers"`
	// Prefix is the object prefix used by the bucket backend.
	Prefix string `mapstructure:"prefix" default:"controllers"`
	// Extension is the document suffix for the file and bucket backends.
	Extension string `mapstructure:"extension" default:".controller.yaml"`
}

// RedisConfig holds the connection settings of the redis backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" default:"localhost:6379"`
	Password string `mapstructure:"password" default:""`
	DB       int    `mapstructure:"db" default:"0"`
	Prefix   string `mapstructure:"prefix" default:"controllers:"`
}
