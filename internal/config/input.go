package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rpgo/goalsim/internal/calculation"
	"github.com/rpgo/goalsim/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedInputFormat is returned for files that are not YAML, TOML or JSON.
var ErrUnsupportedInputFormat = errors.New("unsupported input format")

// Input formats understood by the parser.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// Request is the on-disk form of one simulation: the user's input plus
// optional overrides of the engine settings, regime table and country defaults.
type Request struct {
	Input     domain.SimulationInput                    `yaml:"input" json:"input" toml:"input"`
	Settings  calculation.Settings                      `yaml:"settings" json:"settings" toml:"settings"`
	Regimes   domain.RegimeTable                        `yaml:"regimes,omitempty" json:"regimes,omitempty" toml:"regimes,omitempty"`
	Economics map[string]calculation.EconomicParameters `yaml:"economics,omitempty" json:"economics,omitempty" toml:"economics,omitempty"`
}

// NewEngine builds a simulation engine from the request's overrides.
func (r *Request) NewEngine() (*calculation.SimulationEngine, error) {
	var economics *calculation.EconomicResolver
	if len(r.Economics) > 0 {
		economics = calculation.NewEconomicResolver(r.Economics)
	}
	return calculation.NewSimulationEngineWithSettings(r.Settings, r.Regimes, economics)
}

// InputParser handles parsing of simulation request files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// FormatForFile picks the input format from the file extension.
func FormatForFile(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedInputFormat, filename)
	}
}

// LoadFromFile loads a request from a YAML, TOML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*Request, error) {
	format, err := FormatForFile(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	return ip.Parse(data, format)
}

// Parse decodes a request in the given format. Settings absent from the
// document keep their defaults. Unknown keys are rejected.
func (ip *InputParser) Parse(data []byte, format string) (*Request, error) {
	req := &Request{Settings: calculation.DefaultSettings()}

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(req); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), req)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse TOML: unknown key %s", undecoded[0])
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(req); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedInputFormat, format)
	}

	if err := ip.ValidateRequest(req); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return req, nil
}

// ValidateRequest checks everything that does not depend on the simulation
// start date. Goal deadlines are checked by the engine.
func (ip *InputParser) ValidateRequest(req *Request) error {
	if err := req.Settings.Validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if len(req.Regimes) > 0 {
		if err := req.Regimes.Validate(); err != nil {
			return fmt.Errorf("regimes: %w", err)
		}
	}
	for code, params := range req.Economics {
		if params.InflationRate < -0.10 {
			return fmt.Errorf("economics %s: inflation rate cannot be less than -10%%", code)
		}
		if params.ExpectedReturn <= -1 {
			return fmt.Errorf("economics %s: expected return must be greater than -100%%", code)
		}
	}
	if len(req.Input.GoalList()) == 0 {
		return fmt.Errorf("input: at least one goal is required")
	}
	return nil
}
