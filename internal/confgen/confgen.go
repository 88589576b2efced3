// Package confgen renders configuration files from YAML templates.
package confgen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/sergi/go-diff/diffmatchpatch"
	"gopkg.in/yaml.v3"

	"github.com/g5kbench/cassbench/internal/tree"
)

func Load(templatePath string) (*yaml.Node, error) {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("error reading template: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing template: %w", err)
	}
	return &doc, nil
}

func Encode(doc *yaml.Node) ([]byte, error) {
	buf := bytes.NewBuffer([]byte{})
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Materialize applies spec to doc. The template must already define every
// path the spec references.
func Materialize(doc *yaml.Node, spec tree.Spec) error {
	for _, l := range spec.Leaves() {
		log.Debug("setting template value", "path", l.Path.String(), "value", l.Value)
	}
	return tree.Apply(doc, spec)
}

// Render loads the template at templatePath, applies spec and returns the
// encoded result.
func Render(templatePath string, spec tree.Spec) ([]byte, error) {
	doc, err := Load(templatePath)
	if err != nil {
		return nil, err
	}
	if err := Materialize(doc, spec); err != nil {
		return nil, fmt.Errorf("error materializing %v: %w", templatePath, err)
	}
	return Encode(doc)
}

// Build renders the template and writes it to outputPath, creating parent
// directories as needed.
func Build(templatePath, outputPath string, spec tree.Spec) error {
	result, err := Render(templatePath, spec)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, result, 0o644); err != nil {
		return fmt.Errorf("error writing %v: %w", outputPath, err)
	}
	return nil
}

// Diff compares the normalized template against its rendered form.
func Diff(templatePath string, rendered []byte) (string, error) {
	doc, err := Load(templatePath)
	if err != nil {
		return "", err
	}
	original, err := Encode(doc)
	if err != nil {
		return "", err
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(original), string(rendered))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	return dmp.DiffPrettyText(diffs), nil
}
