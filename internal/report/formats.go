// Package report renders fix suggestions, apply outcomes and compliance
// scores in the supported output formats.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joshsymonds/tokubetsu/internal/models"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
	"github.com/joshsymonds/tokubetsu/pkg/pathutil"
)

// Data is everything a report can show. Formats render the parts that are set.
type Data struct {
	GeneratedAt time.Time                `json:"generated_at" yaml:"generated_at"`
	Compliance  *models.ComplianceReport `json:"compliance,omitempty" yaml:"compliance,omitempty"`
	RunID       string                   `json:"run_id" yaml:"run_id"`
	Project     string                   `json:"project,omitempty" yaml:"project,omitempty"`
	Document    string                   `json:"document,omitempty" yaml:"document,omitempty"`
	Violations  []models.Violation       `json:"violations,omitempty" yaml:"violations,omitempty"`
	Suggestions []models.FixSuggestion   `json:"suggestions" yaml:"suggestions"`
	Outcomes    []models.ApplyOutcome    `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
	Suppressed  int                      `json:"suppressed,omitempty" yaml:"suppressed,omitempty"`
}

// NewData creates report data with a fresh run id.
func NewData(project string) *Data {
	return &Data{
		RunID:       uuid.NewString(),
		Project:     project,
		GeneratedAt: time.Now(),
	}
}

// LoadData reads report data previously written by the json format.
func LoadData(path string) (*Data, error) {
	validPath, err := pathutil.ValidatePath(path, ".json")
	if err != nil {
		return nil, fmt.Errorf("invalid report path: %w", err)
	}

	content, err := os.ReadFile(validPath) // #nosec G304 - path is validated
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	var data Data
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parsing report JSON: %w", err)
	}
	return &data, nil
}

// AutomatedCount returns how many suggestions are safe to apply unattended.
func (d *Data) AutomatedCount() int {
	n := 0
	for _, s := range d.Suggestions {
		if s.Automated {
			n++
		}
	}
	return n
}

// AppliedCount returns how many outcomes were applied.
func (d *Data) AppliedCount() int {
	n := 0
	for _, o := range d.Outcomes {
		if o.Applied {
			n++
		}
	}
	return n
}

// Format represents a report generation strategy.
type Format interface {
	// Generate renders data to w.
	Generate(data *Data, w io.Writer) error
	// Name returns the format identifier (e.g., "text", "json").
	Name() string
	// Description returns a human-readable description of the format.
	Description() string
}

// FormatFactory creates instances of report formats.
type FormatFactory func(log logger.Logger) (Format, error)

var (
	formatRegistry = make(map[string]FormatFactory)
	registryMutex  sync.RWMutex
)

// RegisterFormat registers a new report format factory.
func RegisterFormat(name string, factory FormatFactory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	if factory == nil {
		panic(fmt.Sprintf("report: RegisterFormat factory is nil for format %q", name))
	}
	if _, dup := formatRegistry[name]; dup {
		panic(fmt.Sprintf("report: RegisterFormat called twice for format %q", name))
	}
	formatRegistry[name] = factory
}

// GetFormat creates an instance of the specified report format.
func GetFormat(name string, log logger.Logger) (Format, error) {
	registryMutex.RLock()
	factory, exists := formatRegistry[name]
	registryMutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown report format: %s", name)
	}

	return factory(log)
}

// ListFormats returns the registered format names in lexical order.
func ListFormats() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	formats := make([]string, 0, len(formatRegistry))
	for name := range formatRegistry {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

// Render renders data in the named format to w.
func Render(name string, data *Data, w io.Writer, log logger.Logger) error {
	format, err := GetFormat(name, log)
	if err != nil {
		return err
	}
	if err := format.Generate(data, w); err != nil {
		return fmt.Errorf("generating %s report: %w", name, err)
	}
	return nil
}

// Write renders data in the named format to the file at output, or to
// stdout when output is empty or "-".
func Write(name string, data *Data, output string, log logger.Logger) (err error) {
	if output == "" || output == "-" {
		return Render(name, data, os.Stdout, log)
	}

	validPath, err := pathutil.ValidateOutputPath(output)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(validPath), 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(validPath) // #nosec G304 - path is validated
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	if err := Render(name, data, file, log); err != nil {
		return err
	}

	log.Info("Wrote report", "format", name, "path", validPath)
	return nil
}

// Register built-in formats during package initialization.
func init() {
	RegisterFormat("text", func(log logger.Logger) (Format, error) {
		return &textFormat{logger: log}, nil
	})
	RegisterFormat("json", func(_ logger.Logger) (Format, error) {
		return &jsonFormat{}, nil
	})
	RegisterFormat("yaml", func(log logger.Logger) (Format, error) {
		return NewRemediationReporter(log), nil
	})
	RegisterFormat("html", func(log logger.Logger) (Format, error) {
		gen, err := NewHTMLGenerator(log)
		if err != nil {
			return nil, err
		}
		return gen, nil
	})
}
