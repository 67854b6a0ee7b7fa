package main

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	cli "github.com/urfave/cli/v3"
	yaml "gopkg.in/yaml.v3"

	"cube-generator/internal/analyze"
	"cube-generator/internal/diagnostic"
	"cube-generator/internal/state"
	"cube-generator/record"
)

type fieldReport struct {
	Index      int    `json:"index" yaml:"index"`
	Name       string `json:"name" yaml:"name"`
	Type       string `json:"type" yaml:"type"`
	Exported   bool   `json:"exported" yaml:"exported"`
	Embedded   bool   `json:"embedded,omitempty" yaml:"embedded,omitempty"`
	Comparable bool   `json:"comparable" yaml:"comparable"`
	Tag        string `json:"tag,omitempty" yaml:"tag,omitempty"`
}

type recordReport struct {
	Type     string        `json:"type" yaml:"type"`
	Package  string        `json:"package" yaml:"package"`
	Arity    int           `json:"arity" yaml:"arity"`
	CubeSize int           `json:"cube_size" yaml:"cube_size"`
	RollSize int           `json:"roll_size" yaml:"roll_size"`
	Fields   []fieldReport `json:"fields" yaml:"fields"`
	Warnings []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func newRecordReport(rec *analyze.Record, diags diagnostic.Diagnostics) recordReport {
	r := recordReport{
		Type:     rec.ID.Name,
		Package:  rec.ID.PkgPath,
		Arity:    rec.Arity(),
		CubeSize: 1 << rec.Arity(),
		RollSize: rec.Arity() + 1,
	}

	for i, f := range rec.Fields {
		r.Fields = append(r.Fields, fieldReport{
			Index:      i,
			Name:       f.Name,
			Type:       analyze.TypeString(f.Type),
			Exported:   f.Exported,
			Embedded:   f.Embedded,
			Comparable: f.Comparable(),
			Tag:        string(f.Tag),
		})
	}

	for _, w := range diags.Warnings {
		if w.TypeName == rec.ID.String() {
			r.Warnings = append(r.Warnings, w.String())
		}
	}

	return r
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:         "inspect",
		Usage:        "Reports the fields of record types as generation would see them",
		OnUsageError: usageErrorHandler,
		Action:       runInspect,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "pkg", Value: ".", Usage: "load record types from package `PATTERN`"},
			&cli.StringSliceFlag{Name: "type", Aliases: []string{"t"}, Required: true,
				Usage: "record `NAME` to inspect, bare or package qualified (repeatable)"},
			&cli.StringFlag{Name: "format", Value: "json", Usage: "output `FORMAT` (json or yaml)",
				Validator: func(s string) error {
					if s != "json" && s != "yaml" {
						return fmt.Errorf("unsupported format %q", s)
					}
					return nil
				}},
		},
	}
}

func runInspect(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	records, diags, err := loadRecords(ctx, env.Logger(), cmd.String("pkg"), cmd.StringSlice("type"), record.MaxSupportedArity)
	if err != nil {
		return err
	}
	if diags.HasErrors() {
		return diags.Error()
	}

	reports := make([]recordReport, 0, len(records))
	for _, rec := range records {
		reports = append(reports, newRecordReport(rec, diags))
	}

	var data []byte
	switch cmd.String("format") {
	case "yaml":
		data, err = yaml.Marshal(reports)
	default:
		data, err = json.MarshalIndent(reports, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("unable to encode report: %w", err)
	}

	if _, err = cmd.Root().Writer.Write(data); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}
	return nil
}
