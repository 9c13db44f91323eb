package generator

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/swaggen/blob"
	"github.com/vitalvas/swaggen/blob/fsblob"
	"github.com/vitalvas/swaggen/blob/memblob"
	"github.com/vitalvas/swaggen/blob/minioblob"
)

// ErrConfig is returned for configurations that cannot be used.
var ErrConfig = errors.New("generator: invalid configuration")

// Store kinds.
const (
	StoreFS     = "fs"
	StoreMemory = "memory"
	StoreMinio  = "minio"
)

// Artifact formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const DefaultRoot = "api/swagger"

var templateRegexp = regexp.MustCompile(`\{\{\s*([^}]+)\s*}}`)

// Config drives a generation run.
type Config struct {
	// BaseTemplate is a JSON or YAML Swagger document the artifact extends.
	BaseTemplate string `yaml:"base_template" validate:"omitempty,file"`
	// ResetParameters discards persisted parameters instead of merging.
	ResetParameters bool `yaml:"reset_parameters"`
	// HideEmpty omits methods without parameters.
	HideEmpty bool        `yaml:"hide_empty"`
	Store     StoreConfig `yaml:"store"`
	// RoutesDir holds the handler sources scanned for error outcomes.
	// Scanning is skipped when empty.
	RoutesDir       string   `yaml:"routes_dir" validate:"omitempty,dir"`
	ErrorDictionary string   `yaml:"error_dictionary" validate:"required_with=RoutesDir,omitempty,file"`
	ErrorQualifiers []string `yaml:"error_qualifiers" validate:"dive,required"`
	// Output is the artifact file. Nothing is written when empty.
	Output string `yaml:"output"`
	Format string `yaml:"format" validate:"oneof=json yaml"`
	// ValidateArtifact checks the artifact as a Swagger 2.0 document.
	ValidateArtifact bool `yaml:"validate"`
}

// StoreConfig selects where documentation fragments are kept.
type StoreConfig struct {
	Kind  string           `yaml:"kind" validate:"oneof=fs memory minio"`
	Root  string           `yaml:"root" validate:"required_if=Kind fs"`
	Minio minioblob.Config `yaml:"minio" validate:"-"`
}

// DefaultConfig returns the configuration used for absent keys.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{
			Kind: StoreFS,
			Root: DefaultRoot,
		},
		ErrorQualifiers: []string{"errs"},
		Output:          DefaultRoot + "/swagger.json",
		Format:          FormatJSON,
	}
}

// LoadConfig reads, templates and validates a configuration file.
func LoadConfig(name string) (Config, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read configuration file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes data over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(Template(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("unable to parse configuration file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	return c.validate(true)
}

// validate checks the configuration, leaving the store settings out when
// withStore is false.
func (c Config) validate(withStore bool) error {
	validate := validator.New()

	if !withStore {
		return describe(validate.StructExcept(c, "Store"))
	}

	if err := describe(validate.Struct(c)); err != nil {
		return err
	}
	if c.Store.Kind == StoreMinio {
		return describe(validate.Struct(c.Store.Minio))
	}

	return nil
}

func describe(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	lists := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		lists = append(lists, e.Namespace()+" ("+e.Tag()+")")
	}

	return fmt.Errorf("%w: validation failed on %s", ErrConfig, strings.Join(lists, ", "))
}

// Bucket opens the configured fragment storage.
func (c Config) Bucket() (blob.Bucket, error) {
	switch c.Store.Kind {
	case StoreFS, "":
		return fsblob.New(c.Store.Root), nil
	case StoreMemory:
		return memblob.New(), nil
	case StoreMinio:
		return minioblob.New(c.Store.Minio)
	default:
		return nil, fmt.Errorf("%w: unknown store kind %q", ErrConfig, c.Store.Kind)
	}
}

// Template replaces `{{ env.NAME || fallback }}` expressions. Alternatives
// are tried in order: env references resolve when the variable is set, any
// other alternative is used literally.
func Template(data []byte) []byte {
	return templateRegexp.ReplaceAllFunc(data, func(match []byte) []byte {
		content := strings.TrimSpace(string(match[2 : len(match)-2]))

		for _, part := range strings.Split(content, "||") {
			part = strings.TrimSpace(part)
			if key, ok := strings.CutPrefix(part, "env."); ok {
				if value := os.Getenv(key); value != "" {
					return []byte(value)
				}
				continue
			}
			if part != "" {
				return []byte(part)
			}
		}

		return nil
	})
}
