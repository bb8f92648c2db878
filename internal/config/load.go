package config

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/vk/plughub/internal/ctxlog"
	"github.com/vk/plughub/internal/fsutil"
)

// Defaults couples one extension's default config text with the schema used
// to decode it.
type Defaults struct {
	Section string
	Text    string
	Schema  *Schema
}

// Load builds the effective configuration model. Every extension's default
// config text is decoded first, then any user config found under paths is
// overlaid on top, section by section.
//
// A defaults blob that fails to parse or decode is an extension defect: it is
// logged and its section left absent, and loading continues. A user config
// file that fails to parse or decode is an operator error and fails the load.
func Load(ctx context.Context, defaults []Defaults, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := NewModel()

	schemas := make(map[string]*Schema, len(defaults))
	for _, d := range defaults {
		schemas[d.Section] = d.Schema
		mergeDefaults(ctx, model, d)
	}

	for _, path := range paths {
		if path == "" {
			continue
		}
		files, err := configFiles(path)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			if err := overlayFile(ctx, model, schemas, file); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("Configuration model loaded.", "sections", model.Sections())
	return model, nil
}

// mergeDefaults decodes one extension's default config blob into the model.
func mergeDefaults(ctx context.Context, model *Model, d Defaults) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL([]byte(d.Text), d.Section+"/defaults.hcl")
	if diags.HasErrors() {
		logger.Error("Failed to parse extension default config, section left empty.",
			"section", d.Section, "error", diags.Error())
		return
	}

	values, err := d.Schema.Decode(file.Body)
	if err != nil {
		logger.Error("Failed to decode extension default config, section left empty.",
			"section", d.Section, "error", err)
		return
	}

	model.Merge(d.Section, values)
}

// overlayFile parses one user config file and overlays its sections onto the
// model. Sections are top-level blocks named after the owning extension.
func overlayFile(ctx context.Context, model *Model, schemas map[string]*Schema, path string) error {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return fmt.Errorf("config file %s: unsupported syntax", path)
	}

	for name := range body.Attributes {
		logger.Warn("Ignoring top-level attribute in config file; options belong inside a section block.",
			"file", path, "attribute", name)
	}

	for _, block := range body.Blocks {
		schema, ok := schemas[block.Type]
		if !ok {
			logger.Warn("Ignoring config section for unknown extension.",
				"file", path, "section", block.Type)
			continue
		}
		if len(block.Labels) > 0 {
			return fmt.Errorf("config file %s: section '%s' must not have labels", path, block.Type)
		}

		values, err := schema.Decode(block.Body)
		if err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
		model.Merge(block.Type, values)
	}

	return nil
}

// configFiles resolves a config path to the ordered list of files to load.
func configFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("config path %s: %w", path, err)
	}
	return files, nil
}
