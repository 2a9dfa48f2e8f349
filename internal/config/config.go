package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. BOLSPREAD_DSN.
const EnvPrefix = "BOLSPREAD"

// Output formats accepted by --format.
const (
	FormatZip     = "zip"
	FormatDir     = "dir"
	FormatXLSX    = "xlsx"
	FormatParquet = "parquet"
)

// DefaultReportName is the base name of generated report artifacts.
const DefaultReportName = "eta_ata_deep_dive_report"

// ErrInvalidRoles is returned when a column role binding is missing.
var ErrInvalidRoles = errors.New("invalid column roles")

// ColumnRoles binds each logical field to a column name in the input table.
// Env keys are derived from the field names, e.g. BOLSPREAD_COLUMNS_SHIPMENT_TYPE
// and BOLSPREAD_COLUMNS_BOLID.
type ColumnRoles struct {
	Identifier   string `yaml:"identifier" validate:"required"`
	ShipmentType string `yaml:"shipment_type" split_words:"true" validate:"required"`
	BOLID        string `yaml:"bol_id" validate:"required"`
	ETA          string `yaml:"eta" validate:"required"`
	ATA          string `yaml:"ata" validate:"required"`
}

// DefaultColumnRoles names each column after its role.
func DefaultColumnRoles() ColumnRoles {
	return ColumnRoles{
		Identifier:   "identifier",
		ShipmentType: "shipment_type",
		BOLID:        "bol_id",
		ETA:          "eta",
		ATA:          "ata",
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that every role is bound to a non-empty column name.
func (r ColumnRoles) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRoles, err)
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return fmt.Errorf("%w: no column bound for %s", ErrInvalidRoles, strings.Join(missing, ", "))
}

// Config holds all runtime configuration for a bolspread run. Only
// BOLSPREAD_-prefixed env keys are read: an explicit envconfig name tag would
// also match the bare key, so fields have none.
type Config struct {
	ConfigPath string `ignored:"true"`
	FilePath   string `ignored:"true"`
	OutputPath string `ignored:"true"`
	DSN        string
	Format     string // zip, dir, xlsx or parquet
	LogFormat  string `split_words:"true"` // "text" or "json"
	DayFirst   bool   `split_words:"true"`
	Workers    int
	Force      bool `ignored:"true"` // overwrite an existing output path
	Columns    ColumnRoles
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Format:    FormatZip,
		LogFormat: "text",
		Workers:   1,
		Columns:   DefaultColumnRoles(),
	}
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Columns  ColumnRoles `yaml:"columns"`
	DayFirst *bool       `yaml:"day_first"`
	Workers  *int        `yaml:"workers"`
	Format   string      `yaml:"format"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Only keys present in the file replace current values.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	mergeString(&c.Columns.Identifier, yc.Columns.Identifier)
	mergeString(&c.Columns.ShipmentType, yc.Columns.ShipmentType)
	mergeString(&c.Columns.BOLID, yc.Columns.BOLID)
	mergeString(&c.Columns.ETA, yc.Columns.ETA)
	mergeString(&c.Columns.ATA, yc.Columns.ATA)
	mergeString(&c.Format, yc.Format)
	if yc.DayFirst != nil {
		c.DayFirst = *yc.DayFirst
	}
	if yc.Workers != nil {
		c.Workers = *yc.Workers
	}
	return nil
}

// ApplyEnv overlays BOLSPREAD_* environment variables onto Config.
// Unset variables leave the current value in place.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("load config from env: %w", err)
	}
	return nil
}

// OutputPathOrDefault returns OutputPath, or the default artifact name for Format.
func (c *Config) OutputPathOrDefault() string {
	if c.OutputPath != "" {
		return c.OutputPath
	}
	switch c.Format {
	case FormatZip:
		return DefaultReportName + ".zip"
	case FormatXLSX:
		return DefaultReportName + ".xlsx"
	case FormatParquet:
		return DefaultReportName + "_parquet"
	}
	return DefaultReportName
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	switch c.Format {
	case FormatZip, FormatDir, FormatXLSX, FormatParquet:
	default:
		return fmt.Errorf("unknown output format %q (want zip, dir, xlsx or parquet)", c.Format)
	}
	if c.Workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", c.Workers)
	}
	return c.Columns.Validate()
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Command-line flag names whose values outrank the config file and env.
const (
	FlagDSN          = "dsn"
	FlagLogFormat    = "log-format"
	FlagFormat       = "format"
	FlagDayFirst     = "day-first"
	FlagWorkers      = "workers"
	FlagIdentifier   = "identifier-col"
	FlagShipmentType = "shipment-type-col"
	FlagBOLID        = "bol-id-col"
	FlagETA          = "eta-col"
	FlagATA          = "ata-col"
)

var explicitFields = map[string]func(dst, src *Config){
	FlagDSN:          func(d, s *Config) { d.DSN = s.DSN },
	FlagLogFormat:    func(d, s *Config) { d.LogFormat = s.LogFormat },
	FlagFormat:       func(d, s *Config) { d.Format = s.Format },
	FlagDayFirst:     func(d, s *Config) { d.DayFirst = s.DayFirst },
	FlagWorkers:      func(d, s *Config) { d.Workers = s.Workers },
	FlagIdentifier:   func(d, s *Config) { d.Columns.Identifier = s.Columns.Identifier },
	FlagShipmentType: func(d, s *Config) { d.Columns.ShipmentType = s.Columns.ShipmentType },
	FlagBOLID:        func(d, s *Config) { d.Columns.BOLID = s.Columns.BOLID },
	FlagETA:          func(d, s *Config) { d.Columns.ETA = s.Columns.ETA },
	FlagATA:          func(d, s *Config) { d.Columns.ATA = s.Columns.ATA },
}

// KeepExplicit copies back from flags every field whose flag the user set,
// so command-line values win over the config file and the environment.
func (c *Config) KeepExplicit(flags Config, changed func(name string) bool) {
	for name, apply := range explicitFields {
		if changed(name) {
			apply(c, &flags)
		}
	}
}
