package main

import (
	"context"
	"fmt"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cube-generator/internal/analyze"
	"cube-generator/internal/diagnostic"
	"cube-generator/internal/gen"
	"cube-generator/internal/state"
	"cube-generator/record"
	"cube-generator/utils"
)

func genCommand() *cli.Command {
	return &cli.Command{
		Name:         "gen",
		Usage:        "Generates variant types with cube and roll functions",
		OnUsageError: usageErrorHandler,
		Action:       runGen,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "pkg", Value: ".", Usage: "load record types from package `PATTERN`"},
			&cli.StringSliceFlag{Name: "type", Aliases: []string{"t"}, Required: true,
				Usage: "record `NAME` to generate for, bare or package qualified (repeatable)"},
			&cli.StringFlag{Name: "out", Usage: "write generated files to `DIR` instead of the record package " +
				"(the code keeps the record's package clause and unqualified names, so DIR should hold that package)"},
			&cli.IntFlag{Name: "max-arity", Usage: "reject records with more than `N` fields (overrides configuration)"},
			&cli.BoolFlag{Name: "no-cube", Usage: "do not generate Cube functions"},
			&cli.BoolFlag{Name: "no-roll", Usage: "do not generate Roll functions"},
			&cli.BoolFlag{Name: "dry-run", Usage: "print generated code to STDOUT instead of writing files"},
		},
	}
}

// loadRecords resolves every requested type to a record. Failures are
// collected so that one run reports all bad types.
func loadRecords(ctx context.Context, log *zap.Logger, pkg string, names []string, maxArity int) ([]*analyze.Record, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	analyzer := analyze.NewAnalyzer()
	if _, err := analyzer.LoadPackages(ctx, pkg); err != nil {
		return nil, diags, err
	}

	records := make([]*analyze.Record, 0, len(names))
	for _, name := range names {
		rec, d := loadRecord(analyzer, name, maxArity)
		diags.Merge(d)

		if rec != nil {
			records = append(records, rec)
			log.Debug("Record loaded", zap.Stringer("type", rec.ID), zap.Strings("fields", rec.FieldNames()))
		}
	}

	for _, w := range diags.Warnings {
		log.Warn(w.Message, zap.String("code", w.Code), zap.String("type", w.TypeName), zap.String("field", w.FieldName))
	}

	return records, diags, nil
}

// loadRecord resolves a single type. The record is nil when the diagnostics
// hold an error.
func loadRecord(analyzer *analyze.Analyzer, name string, maxArity int) (*analyze.Record, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	id, err := analyzer.ResolveType(name)
	if err != nil {
		diags.AddError(name, err)
		return nil, diags
	}

	rec, err := analyzer.Record(id, maxArity)
	if err != nil {
		diags.AddError(id.String(), err)
		return nil, diags
	}

	diags.CheckRecord(rec)

	return rec, diags
}

// foreignRecords returns the records whose package does not live in outDir.
// Code generated for them would not compile there.
func foreignRecords(records []*analyze.Record, outDir string) []*analyze.Record {
	out, err := filepath.Abs(outDir)
	if err != nil {
		out = filepath.Clean(outDir)
	}

	var foreign []*analyze.Record
	for _, rec := range records {
		if dir, err := filepath.Abs(rec.Dir); err != nil || dir != out {
			foreign = append(foreign, rec)
		}
	}

	return foreign
}

func runGen(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Logger()

	settings := env.Cfg.Generator
	if cmd.IsSet("max-arity") {
		settings.MaxArity = cmd.Int("max-arity")
	}
	if cmd.IsSet("out") {
		settings.OutputDir = filepath.Clean(cmd.String("out"))
	}
	if cmd.Bool("no-cube") {
		settings.Cube = false
	}
	if cmd.Bool("no-roll") {
		settings.Roll = false
	}

	if !utils.IsInRange(1, settings.MaxArity, record.MaxSupportedArity) {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", record.ErrInvalidArity, settings.MaxArity, record.MaxSupportedArity)
	}

	records, diags, err := loadRecords(ctx, log, cmd.String("pkg"), cmd.StringSlice("type"), settings.MaxArity)
	if err != nil {
		return err
	}
	if diags.HasErrors() {
		for _, d := range diags.Errors {
			log.Error("Unable to use type", zap.String("code", d.Code), zap.String("type", d.TypeName), zap.Error(d.Err))
		}
		return fmt.Errorf("%d of %d types rejected: %w", len(diags.Errors), len(cmd.StringSlice("type")), diags.Error())
	}

	genConfig := settings.GenConfig()
	files, err := gen.NewGenerator(genConfig, log).Generate(records)
	if err != nil {
		return err
	}

	if cmd.Bool("dry-run") {
		out := cmd.Root().Writer
		for _, f := range files {
			if _, err := fmt.Fprintf(out, "// %s\n%s\n", filepath.Join(f.Dir, f.Filename), f.Content); err != nil {
				return fmt.Errorf("unable to write generated code: %w", err)
			}
		}
		return nil
	}

	if genConfig.OutputDir != "" {
		for _, rec := range foreignRecords(records, genConfig.OutputDir) {
			log.Warn("Output directory is not the record package, generated code will not compile there as is",
				zap.Stringer("type", rec.ID), zap.String("package", rec.Dir), zap.String("out", genConfig.OutputDir))
		}
	}

	written, err := gen.WriteFiles(files, genConfig.OutputDir)
	for _, path := range written {
		log.Info("Generated", zap.String("file", path))
	}
	return err
}
