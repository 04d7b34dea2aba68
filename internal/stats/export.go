package stats

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
)

// placeholderRegex matches {stat_id} tokens in the export template.
var placeholderRegex = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Exporter renders the user-editable template into the output file that
// external overlay tools (OBS etc.) point at. The whole output is
// rewritten on every refresh.
type Exporter struct {
	engine       *Engine
	log          *log.Logger
	templatePath string
	outputPath   string
}

func NewExporter(engine *Engine, logger *log.Logger, templatePath, outputPath string) *Exporter {
	return &Exporter{
		engine:       engine,
		log:          logger,
		templatePath: templatePath,
		outputPath:   outputPath,
	}
}

// Refresh reads the template, substitutes every known placeholder with its
// freshly evaluated value, and overwrites the output file. Placeholders
// for unknown ids are left as literal text so users can keep arbitrary
// braces in their layout.
func (x *Exporter) Refresh() error {
	template, err := x.ensureTemplate()
	if err != nil {
		return err
	}

	output := placeholderRegex.ReplaceAllStringFunc(template, func(match string) string {
		id := match[1 : len(match)-1]
		value, err := x.engine.Value(id)
		if err != nil {
			// Unknown or failing ids survive verbatim
			return match
		}
		return value
	})

	// 0644: Owner can read/write, Group/Others can read
	if err := os.WriteFile(x.outputPath, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write export output: %w", err)
	}
	return nil
}

// ensureTemplate returns the template contents, generating a default one
// enumerating every statistic if the file doesn't exist yet.
func (x *Exporter) ensureTemplate() (string, error) {
	content, err := os.ReadFile(x.templatePath)
	if err == nil {
		return string(content), nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read export template: %w", err)
	}

	var b strings.Builder
	for _, stat := range x.engine.Stats() {
		fmt.Fprintf(&b, stat.Format+"\n", "{"+stat.ID+"}")
	}
	fresh := b.String()

	if err := os.WriteFile(x.templatePath, []byte(fresh), 0644); err != nil {
		return "", fmt.Errorf("failed to write default export template: %w", err)
	}
	x.log.Printf("generated export template at %s", x.templatePath)
	return fresh, nil
}
