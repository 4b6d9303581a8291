package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Prefix is the namespace of every environment variable read by the service.
const Prefix = "HRMS"

// DefaultDBURL points at a SQLite file next to the binary.
const DefaultDBURL = "sqlite:///./hrms.db"

// FileName is the optional YAML file read when HRMS_CONFIG_FILE is not set.
const FileName = "config.yaml"

// ErrHelp is returned by Load when usage was requested and printed.
var ErrHelp = errors.New("provided help")

type Config struct {
	Args conf.Args
	Web  struct {
		Host            string        `conf:"default:0.0.0.0:8000"`
		ReadTimeout     time.Duration `conf:"default:5s"`
		WriteTimeout    time.Duration `conf:"default:10s"`
		ShutdownTimeout time.Duration `conf:"default:5s"`
		AllowedOrigins  []string
	}
	DB struct {
		URL        string `conf:"default:sqlite:///./hrms.db"`
		DisableTLS bool   `conf:"default:true"`
		Debug      bool   `conf:"default:false"`
	}
	Redis struct {
		Addr     string
		Password string `conf:"noprint"`
		DB       int    `conf:"default:0"`
		Channel  string `conf:"default:hrms.events"`
	}
}

// Load reads the configuration from config.yaml, a .env file, the HRMS_*
// environment and the given command-line arguments, in increasing precedence.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	path := os.Getenv(Prefix + "_CONFIG_FILE")
	if path == "" {
		path = FileName
	}
	if err := loadFile(path); err != nil {
		return nil, err
	}

	var c Config
	if err := conf.Parse(args, Prefix, &c); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, err := conf.Usage(Prefix, &c)
			if err != nil {
				return nil, errors.Wrap(err, "generating config usage")
			}
			os.Stdout.WriteString(usage + "\n")
			return nil, ErrHelp
		}
		return nil, errors.Wrap(err, "parsing config")
	}

	if c.DB.URL == DefaultDBURL {
		if url := os.Getenv("DATABASE_URL"); url != "" {
			c.DB.URL = url
		}
	}

	return &c, nil
}

// String renders the configuration for the startup log, without secrets.
func (c *Config) String() string {
	out, err := conf.String(c)
	if err != nil {
		return err.Error()
	}

	return out
}

// loadFile exports the keys of a flat YAML file as HRMS_* variables that are
// not already set. db_url becomes HRMS_DB_URL; lists are comma joined.
func loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "reading config file")
	}

	values := map[string]interface{}{}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}

	for key, value := range values {
		env := Prefix + "_" + strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(key))
		if os.Getenv(env) != "" {
			continue
		}

		var v string
		switch value := value.(type) {
		case nil:
			continue
		case []interface{}:
			items := make([]string, len(value))
			for i, item := range value {
				items[i] = fmt.Sprint(item)
			}
			// conf splits slice fields on semicolons
			v = strings.Join(items, ";")
		default:
			v = fmt.Sprint(value)
		}

		if err := os.Setenv(env, v); err != nil {
			return errors.Wrapf(err, "exporting %s", env)
		}
	}

	return nil
}
