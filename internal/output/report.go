package output

import (
	"fmt"
	"io"
	"os"

	"github.com/rpgo/goalsim/internal/domain"
	"gopkg.in/yaml.v3"
)

// extensionFor maps a canonical formatter name to a file extension.
func extensionFor(name string) string {
	switch name {
	case "console", "console-lite":
		return "txt"
	case "csv", "detailed-csv":
		return "csv"
	default:
		return name
	}
}

// GenerateReport writes results to dir using the named formatter. "all" writes
// the verbose console, detailed CSV and JSON reports. The written paths are returned.
func GenerateReport(results *domain.SimulationOutput, format, dir string) ([]string, error) {
	var formatters []Formatter
	if NormalizeFormatName(format) == "all" {
		formatters = []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}, JSONFormatter{}}
	} else if f := GetFormatterByName(format); f != nil {
		formatters = []Formatter{f}
	} else {
		return nil, UnsupportedFormatError(format)
	}

	var written []string
	for _, f := range formatters {
		path, err := WriteFormatted(f, results, dir, extensionFor(f.Name()))
		if err != nil {
			return written, fmt.Errorf("writing %s report: %w", f.Name(), err)
		}
		written = append(written, path)
	}
	return written, nil
}

// Render writes results to w using the named formatter.
func Render(w io.Writer, results *domain.SimulationOutput, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return UnsupportedFormatError(format)
	}
	data, err := f.Format(results)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SaveInput writes a simulation input as YAML, in the same layout the config
// loader reads under its "input" key.
func SaveInput(input domain.SimulationInput, filename string) error {
	b, err := yaml.Marshal(struct {
		Input domain.SimulationInput `yaml:"input"`
	}{input})
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
