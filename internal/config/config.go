// Package config provides configuration management for the catalog pipeline.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"demacat/internal/models"
)

// Configuration validation errors.
var (
	ErrMissingInputDir      = errors.New("pipeline.input_dir is required")
	ErrMissingOutputDir     = errors.New("pipeline.output_dir is required")
	ErrInvalidWorkers       = errors.New("pipeline.workers must be at least 1")
	ErrInvalidLogLevel      = errors.New("pipeline.logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat     = errors.New("pipeline.logging.format must be 'text' or 'json'")
	ErrNoCategories         = errors.New("at least one category is required")
	ErrCategoryMissingKey   = errors.New("category key is required")
	ErrCategoryNoKeywords   = errors.New("category needs at least one keyword")
	ErrDuplicateCategoryKey = errors.New("duplicate category key")
	ErrNoPropertyFields     = errors.New("normalizer.property_fields is required")
	ErrFieldInBothBuckets   = errors.New("field listed as both property and attribute")
	ErrInvalidThreshold     = errors.New("search.threshold must be within [0, 1]")
	ErrInvalidMaxResults    = errors.New("search.max_results must be at least 1")
)

// Config is the complete pipeline configuration. Categories are
// priority-ordered: classification takes the first match, so more specific
// categories must be listed before broader ones.
type Config struct {
	Pipeline   PipelineConfig    `yaml:"pipeline"`
	Search     SearchConfig      `yaml:"search"`
	Normalizer NormalizerConfig  `yaml:"normalizer"`
	Categories []models.Category `yaml:"categories"`
}

// PipelineConfig contains run-level settings.
type PipelineConfig struct {
	InputDir   string           `yaml:"input_dir"`
	OutputDir  string           `yaml:"output_dir"`
	Workers    int              `yaml:"workers"`
	Logging    LoggingConfig    `yaml:"logging"`
	Validation ValidationConfig `yaml:"validation"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ValidationConfig toggles the consistency checks.
type ValidationConfig struct {
	CheckAngles     bool `yaml:"check_angles"`
	CheckSKUMapping bool `yaml:"check_sku_mapping"`
}

// SearchConfig carries the fuzzy search defaults.
type SearchConfig struct {
	Threshold       float64 `yaml:"threshold"`
	MaxResults      int     `yaml:"max_results"`
	BoostExact      float64 `yaml:"boost_exact"`
	BoostStartsWith float64 `yaml:"boost_starts_with"`
}

// NormalizerConfig defines the canonical property/attribute split. A raw
// field becomes a property when its name is on PropertyFields or ends in one
// of UnitSuffixes; it becomes an attribute when on AttributeFields; anything
// else is dropped from the canonical view but kept in the raw record.
type NormalizerConfig struct {
	PropertyFields  []string `yaml:"property_fields"`
	AttributeFields []string `yaml:"attribute_fields"`
	UnitSuffixes    []string `yaml:"unit_suffixes"`
}

// Default returns the built-in configuration, including the stock category
// and field tables.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			InputDir:  "data/catalogs",
			OutputDir: "data/out",
			Workers:   4,
			Logging: LoggingConfig{
				Level:  "info",
				Format: "text",
			},
			Validation: ValidationConfig{
				CheckAngles:     true,
				CheckSKUMapping: true,
			},
		},
		Search: SearchConfig{
			Threshold:       0.3,
			MaxResults:      100,
			BoostExact:      2,
			BoostStartsWith: 1.5,
		},
		Normalizer: NormalizerConfig{
			PropertyFields:  defaultPropertyFields(),
			AttributeFields: defaultAttributeFields(),
			UnitSuffixes:    []string{"_mm", "_bar", "_kg", "_m", "_v", "_w", "_kw", "_a", "_l", "_g_m", "_m3_h", "_lpm", "_nm"},
		},
		Categories: defaultCategories(),
	}
}

// Load reads configuration from a YAML file, applied on top of defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Pipeline.InputDir == "" {
		return ErrMissingInputDir
	}

	if c.Pipeline.OutputDir == "" {
		return ErrMissingOutputDir
	}

	if c.Pipeline.Workers < 1 {
		return ErrInvalidWorkers
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Pipeline.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Pipeline.Logging.Format != "text" && c.Pipeline.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	if len(c.Categories) == 0 {
		return ErrNoCategories
	}

	seen := make(map[string]bool, len(c.Categories))

	for i, cat := range c.Categories {
		if cat.Key == "" {
			return fmt.Errorf("%w: categories[%d]", ErrCategoryMissingKey, i)
		}

		if len(cat.Keywords) == 0 {
			return fmt.Errorf("%w: categories[%d] (%s)", ErrCategoryNoKeywords, i, cat.Key)
		}

		if seen[cat.Key] {
			return fmt.Errorf("%w: %s", ErrDuplicateCategoryKey, cat.Key)
		}

		seen[cat.Key] = true
	}

	if len(c.Normalizer.PropertyFields) == 0 {
		return ErrNoPropertyFields
	}

	// The split must be a total function: no field may be claimed by both
	// buckets.
	props := make(map[string]bool, len(c.Normalizer.PropertyFields))
	for _, f := range c.Normalizer.PropertyFields {
		props[f] = true
	}

	for _, f := range c.Normalizer.AttributeFields {
		if props[f] {
			return fmt.Errorf("%w: %s", ErrFieldInBothBuckets, f)
		}
	}

	if c.Search.Threshold < 0 || c.Search.Threshold > 1 {
		return ErrInvalidThreshold
	}

	if c.Search.MaxResults < 1 {
		return ErrInvalidMaxResults
	}

	return nil
}

func defaultPropertyFields() []string {
	return []string{
		// Basic info
		"type", "maat", "size", "werkdruk", "angle", "bestelnr",
		// Pump properties
		"debiet_m3_h", "aansluiting", "aanzuigdiepte_m", "aanzuig", "steek",
		"opv_hoogte_m", "opvoerhoogte_m", "lengte", "spanning_v",
		"vermogen_kw", "vermogen_w", "vermogen_pk", "stroom_a", "pomp_dia_mm",
		// Technical specs
		"pressure_max_bar", "pressure_bar", "max_pressure_bar", "pressure",
		"flow_lpm", "flow_m3_h", "flow_rate", "power_w", "voltage_v", "rpm",
		"weight_kg", "dimensions_mm", "connection_size", "diameter_mm",
		"diameter", "length_m", "width_mm", "height_mm", "depth_mm",
		"capacity_l", "capacity", "volume", "volume_l",
		// Pipe and fitting properties
		"dn", "od", "id", "wall_thickness", "wall_thickness_mm",
		"thread_size", "thread", "thread_female", "thread_male",
		"inner_diameter", "outer_diameter", "buitendiameter",
		"binnendiameter", "wanddikte", "lengte_mm", "length_mm",
		"thickness_mm", "socket_sizes", "connection", "sku_series",
		// Hose properties
		"binnen_dia_mm", "wanddikte_mm", "vacu_m_bar", "vacuum_bar",
		"buigradius", "bend_radius", "gewicht_g_m", "weight_g_m",
		"rollengte", "roll_length",
		// Dutch generic fields
		"gewicht", "inhoud", "capaciteit", "vermogen", "spanning",
		"frequentie", "toerental", "aansluitmaat",
		// Price fields
		"price_excl_btw", "price_incl_btw",
	}
}

func defaultAttributeFields() []string {
	return []string{
		"spec_liquid_temp_range", "spec_temp_range", "spec_max_pressure",
		"spec_application_desc", "spec_housing", "spec_product_variant",
		"application", "color", "finish", "thread_type", "pressure_rating",
		"temperature_range", "material_name", "seal_material",
		"seal_material_name", "connection_type",
	}
}

func defaultCategories() []models.Category {
	return []models.Category{
		{
			Key:         "pumps",
			Name:        "Pumps",
			Icon:        "💧",
			Description: "Submersible pumps, centrifugal pumps, well pumps, drainage pumps",
			Keywords:    []string{"pump", "pomp", "submersible", "centrifugal", "well_pump", "drainage", "bronpomp", "dompelpomp", "zuigerpomp", "centrifugaalpomp"},
		},
		{
			Key:         "pipes",
			Name:        "Pipes & Tubes",
			Icon:        "🔧",
			Description: "PE pipes, PVC pipes, pressure pipes, drainage pipes, plastic tubes",
			Keywords:    []string{"pipe", "tube", "buizen", "buis", "leiding", "drukbuis", "afvoerleiding", "kunststof"},
		},
		{
			Key:         "hoses",
			Name:        "Hoses & Flexible Tubes",
			Icon:        "🌀",
			Description: "Rubber hoses, suction hoses, PU hoses, spiral hoses, flat hoses",
			Keywords:    []string{"hose", "slang", "slangen", "afzuigslang", "rubber", "spiral", "flat", "oprolbare"},
		},
		{
			Key:         "fittings",
			Name:        "Fittings & Connections",
			Icon:        "🔩",
			Description: "Brass fittings, stainless steel fittings, pipe connections, adapters",
			Keywords:    []string{"fitting", "koppeling", "connector", "adapter", "elbow", "tee", "draadfitting", "lasfitting", "messing", "rvs"},
		},
		{
			Key:         "clamps",
			Name:        "Clamps & Fasteners",
			Icon:        "🔗",
			Description: "Hose clamps, pipe clamps, fastening systems",
			Keywords:    []string{"clamp", "klem", "klemmen", "slangklem"},
		},
		{
			Key:         "compressors",
			Name:        "Compressors & Air Equipment",
			Icon:        "⚙️",
			Description: "Air compressors, compressed air equipment, pneumatic tools",
			Keywords:    []string{"compressor", "compressed_air", "air_compressor", "luchtcompressor", "abs", "perslucht"},
		},
		{
			Key:         "pressure_washers",
			Name:        "Pressure Washers",
			Icon:        "🚿",
			Description: "High-pressure cleaners, pressure washing equipment, accessories",
			Keywords:    []string{"pressure_washer", "hogedrukreiniger", "kranzle", "kränzle"},
		},
		{
			Key:         "power_tools",
			Name:        "Power Tools",
			Icon:        "🔨",
			Description: "Drills, saws, grinders, sanders, impact drivers, cordless tools",
			Keywords:    []string{"drill", "saw", "grinder", "sander", "polisher", "router", "planer", "trimmer", "impact", "hammer", "screwdriver", "wrench", "makita"},
		},
		{
			Key:         "garden_tools",
			Name:        "Garden Tools & Equipment",
			Icon:        "🌱",
			Description: "Lawn mowers, hedge trimmers, chainsaws, garden pumps",
			Keywords:    []string{"lawn", "mower", "hedge", "trimmer", "blower", "chainsaw", "grass", "garden", "cultivator", "tiller"},
		},
		{
			Key:         "accessories",
			Name:        "Accessories & Parts",
			Icon:        "🔧",
			Description: "Spare parts, batteries, chargers, cases, pump accessories",
			Keywords:    []string{"accessory", "toebehoren", "battery", "accu", "charger", "case", "bag", "spare", "onderdeel"},
		},
	}
}
