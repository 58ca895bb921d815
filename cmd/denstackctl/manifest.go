package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

type manifestCmd struct {
	Export   manifestExportCmd   `cmd:"" help:"Write the effective section catalog as a manifest."`
	Validate manifestValidateCmd `cmd:"" help:"Check manifest files without applying them."`
}

type manifestExportCmd struct {
	Name      string   `default:"denstack superadmin" help:"Manifest name (normalized to kebab-case)."`
	Section   []string `help:"Only export these section ids (repeatable)."`
	Out       string   `type:"path" help:"Output file (defaults to stdout)."`
	Overwrite bool     `help:"Overwrite an existing output file."`
}

func (cmd *manifestExportCmd) Run(_ context.Context, g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	registry := console.NewRegistry()
	if cfg.Manifest.Path != "" {
		if _, err := registry.LoadManifestFile(cfg.Manifest.Path); err != nil {
			return err
		}
	}

	wanted := make([]console.SectionID, 0, len(cmd.Section))
	for _, raw := range cmd.Section {
		id, err := console.ParseSectionID(raw)
		if err != nil {
			return err
		}
		wanted = append(wanted, id)
	}
	doc := console.SectionManifestDocument{
		Version: console.ManifestVersion,
		Name:    strcase.ToKebab(cmd.Name),
	}
	for _, def := range registry.Definitions() {
		if len(wanted) > 0 && !slices.Contains(wanted, def.ID) {
			continue
		}
		doc.Sections = append(doc.Sections, def)
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("denstackctl: encode manifest: %w", err)
	}
	if cmd.Out == "" {
		_, err = stdout.Write(out)
		return err
	}
	if _, err := os.Stat(cmd.Out); err == nil && !cmd.Overwrite {
		return fmt.Errorf("denstackctl: %s exists (use --overwrite to replace)", cmd.Out)
	}
	if err := os.MkdirAll(filepath.Dir(cmd.Out), 0o755); err != nil {
		return fmt.Errorf("denstackctl: create manifest dir: %w", err)
	}
	if err := os.WriteFile(cmd.Out, out, 0o644); err != nil {
		return fmt.Errorf("denstackctl: write manifest: %w", err)
	}
	success("Exported %d sections to %s", len(doc.Sections), cmd.Out)
	return nil
}

type manifestValidateCmd struct {
	Paths []string `arg:"" help:"Manifest files to check."`
}

func (cmd *manifestValidateCmd) Run(context.Context, *Globals) error {
	var errs []error
	for _, path := range cmd.Paths {
		doc, err := console.ReadManifest(path)
		if err != nil {
			warn("%v", err)
			errs = append(errs, err)
			continue
		}
		if err := console.NewRegistry().LoadManifestDocument(doc); err != nil {
			warn("%v", err)
			errs = append(errs, err)
			continue
		}
		success("%s: %d sections", path, len(doc.Sections))
	}
	return errors.Join(errs...)
}
