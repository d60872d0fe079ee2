package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexanderjulianmartinez/data-checks/pkg/checks"
)

type Config struct {
	Source   SourceConfig    `yaml:"source"`
	History  *HistoryConfig  `yaml:"history"`
	Datasets []DatasetConfig `yaml:"datasets"`
}

type SourceConfig struct {
	Type   string `yaml:"type"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
	Schema string `yaml:"schema"`
}

type HistoryConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type DatasetConfig struct {
	Name   string        `yaml:"name"`
	Path   string        `yaml:"path"`
	Checks []CheckConfig `yaml:"checks"`
}

// CheckConfig is the YAML surface of one configured check. Only Type is
// common; the remaining fields apply per check kind, and optional numeric
// parameters are pointers so an absent key is distinguishable from zero.
type CheckConfig struct {
	Type              string   `yaml:"type"`
	Column            string   `yaml:"column"`
	Columns           []string `yaml:"columns"`
	ExpectedColumns   []string `yaml:"expected_columns"`
	HistoricalColumns []string `yaml:"historical_columns"`
	Min               *float64 `yaml:"min"`
	Max               *float64 `yaml:"max"`
	Reference         *float64 `yaml:"reference"`
	Tolerance         *float64 `yaml:"tolerance"`
	MaxVariance       *float64 `yaml:"max_variance"`
	Lookback          int      `yaml:"lookback"`
}

// Spec resolves the configured type string to its typed check. The history
// counts and current count of a record_anomalies check are bound at run
// time, not here.
func (c CheckConfig) Spec() (checks.Check, error) {
	switch checks.Kind(c.Type) {
	case checks.KindUniqueIdentifiers:
		if c.Column == "" {
			return nil, fmt.Errorf("check %s: column is required", c.Type)
		}
		return checks.UniqueIdentifiers{Column: c.Column}, nil

	case checks.KindSchemaConsistency:
		if len(c.ExpectedColumns) == 0 {
			return nil, fmt.Errorf("check %s: expected_columns is required", c.Type)
		}
		return checks.SchemaConsistency{ExpectedColumns: c.ExpectedColumns}, nil

	case checks.KindNonNull:
		if len(c.Columns) == 0 {
			return nil, fmt.Errorf("check %s: columns is required", c.Type)
		}
		return checks.NonNull{Columns: c.Columns}, nil

	case checks.KindThreshold:
		if c.Column == "" {
			return nil, fmt.Errorf("check %s: column is required", c.Type)
		}
		if c.Min == nil || c.Max == nil {
			return nil, fmt.Errorf("check %s: min and max are required", c.Type)
		}
		return checks.Threshold{Column: c.Column, Min: *c.Min, Max: *c.Max}, nil

	case checks.KindDynamicThreshold:
		if c.Column == "" {
			return nil, fmt.Errorf("check %s: column is required", c.Type)
		}
		if c.Reference == nil || c.Tolerance == nil {
			return nil, fmt.Errorf("check %s: reference and tolerance are required", c.Type)
		}
		return checks.DynamicThreshold{Column: c.Column, Reference: *c.Reference, Tolerance: *c.Tolerance}, nil

	case checks.KindVariance:
		if c.Column == "" {
			return nil, fmt.Errorf("check %s: column is required", c.Type)
		}
		if c.MaxVariance == nil {
			return nil, fmt.Errorf("check %s: max_variance is required", c.Type)
		}
		return checks.Variance{Column: c.Column, MaxVariance: c.MaxVariance}, nil

	case checks.KindRecordAnomalies:
		return checks.RecordAnomalies{Lookback: c.Lookback}, nil

	case checks.KindNonZeroRecords:
		return checks.NonZeroRecords{}, nil

	case checks.KindColumnNameConsistency:
		if len(c.HistoricalColumns) == 0 {
			return nil, fmt.Errorf("check %s: historical_columns is required", c.Type)
		}
		return checks.ColumnNameConsistency{HistoricalColumns: c.HistoricalColumns}, nil
	}
	return nil, fmt.Errorf("%w: %q", checks.ErrUnknownCheck, c.Type)
}

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}

	_, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Source.Type {
	case "csv", "parquet":
	case "mysql":
		if c.Source.DSN == "" {
			return errors.New("source.dsn is required")
		}
		if c.Source.Schema == "" {
			return errors.New("source.schema is required")
		}
	default:
		return errors.New("source.type must be csv, parquet or mysql")
	}

	if c.History != nil {
		if len(c.History.Brokers) == 0 {
			return errors.New("history.brokers is required")
		}
		if c.History.Topic == "" {
			return errors.New("history.topic is required")
		}
	}

	if len(c.Datasets) == 0 {
		return errors.New("at least one dataset is required")
	}
	for _, ds := range c.Datasets {
		if ds.Name == "" {
			return errors.New("dataset.name is required")
		}
		if len(ds.Checks) == 0 {
			return fmt.Errorf("dataset %s must define at least one check", ds.Name)
		}
		if c.Source.Type != "mysql" && c.Source.Path == "" && ds.Path == "" {
			return fmt.Errorf("dataset %s must define a path when source.path is not set", ds.Name)
		}
		for _, chk := range ds.Checks {
			if _, err := chk.Spec(); err != nil {
				return fmt.Errorf("dataset %s: %w", ds.Name, err)
			}
			if checks.Kind(chk.Type) == checks.KindRecordAnomalies && c.History == nil {
				return fmt.Errorf("dataset %s: record_anomalies requires the history section", ds.Name)
			}
		}
	}
	return nil
}
