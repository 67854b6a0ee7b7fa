package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"maps"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"cube-generator/internal/analyze"
)

// DefaultOptionPkgPath is the import path of the Option type used by
// generated variants.
const DefaultOptionPkgPath = "cube-generator/option"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputDir, when set, is where generated files are written instead of
	// the record's package directory. Used for debug sidecars too.
	OutputDir string
	// FileSuffix is appended to the snake_case record name.
	FileSuffix string
	// OptionPkgPath is the import path of the option package.
	OptionPkgPath string
	// Cube enables Cube<Name> generation.
	Cube bool
	// Roll enables Roll<Name> generation.
	Roll bool
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		FileSuffix:       "_cube.go",
		OptionPkgPath:    DefaultOptionPkgPath,
		Cube:             true,
		Roll:             true,
		GenerateComments: true,
	}
}

// ErrNothingToGenerate is returned when both cube and roll are disabled.
var ErrNothingToGenerate = errors.New("both cube and roll generation are disabled")

// Generator generates Go code for analyzed records.
type Generator struct {
	config GeneratorConfig
	log    *zap.Logger

	// contextPkgPath is the package path currently being generated into.
	// Used to suppress package prefixes for types in the same package.
	contextPkgPath string
}

// NewGenerator creates a new Generator. A nil logger disables logging.
func NewGenerator(config GeneratorConfig, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}

	return &Generator{config: config, log: log}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "household_cube.go").
	Filename string
	// Dir is the directory of the record's package.
	Dir string
	// Record is the record the file was generated for.
	Record analyze.TypeID
	// Content is the formatted Go source code.
	Content []byte
}

// Generate produces one file per record. Nothing is returned unless every
// record succeeds.
func (g *Generator) Generate(records []*analyze.Record) ([]GeneratedFile, error) {
	if !g.config.Cube && !g.config.Roll {
		return nil, ErrNothingToGenerate
	}

	files := make([]GeneratedFile, 0, len(records))

	for _, rec := range records {
		file, err := g.generateRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", rec.ID, err)
		}

		g.log.Debug("Generated transformations",
			zap.Stringer("type", rec.ID),
			zap.Int("arity", rec.Arity()),
			zap.String("file", file.Filename),
			zap.Int("bytes", len(file.Content)))

		files = append(files, *file)
	}

	return files, nil
}

// generateRecord generates code for a single record.
func (g *Generator) generateRecord(rec *analyze.Record) (*GeneratedFile, error) {
	data := g.buildTemplateData(rec)

	var buf bytes.Buffer
	if err := cubeTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: keep the unformatted code around to aid debugging.
		debugDir := g.config.OutputDir
		if debugDir == "" {
			debugDir = rec.Dir
		}

		if werr := writeDebugUnformatted(debugDir, data.Filename, buf.Bytes()); werr != nil {
			g.log.Warn("Unable to write unformatted code", zap.Error(werr))
		}

		return &GeneratedFile{
			Filename: data.Filename,
			Dir:      rec.Dir,
			Record:   rec.ID,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: data.Filename,
		Dir:      rec.Dir,
		Record:   rec.ID,
		Content:  formatted,
	}, nil
}

// templateData holds all data needed for the cube template.
type templateData struct {
	PackageName      string
	Filename         string
	Imports          []importSpec
	RecordName       string
	VariantName      string
	Opt              string // Local name of the option package
	In               string // Record parameter of Cube and Roll
	Out              string // Result slice of Cube
	Recv             string // Mask receiver
	MaskVar          string // Mask accumulator
	FieldsVar        string
	CubeFunc         string
	RollFunc         string
	Fields           []fieldData
	Rolls            [][]fieldData
	CubeSize         int
	GenerateCube     bool
	GenerateRoll     bool
	GenerateMask     bool
	GenerateComments bool
}

// fieldData describes one record field in the generated code.
type fieldData struct {
	Name  string // Field name, shared by record and variant
	Type  string // Field type as spelled in the generated package
	Var   string // Loop variable in the cube
	Bit   int    // Position in the presence mask
	Tag   string // Variant struct tag, including backquotes
	Quote string // Name as a Go string literal
}

// buildTemplateData constructs the template data for a record.
func (g *Generator) buildTemplateData(rec *analyze.Record) *templateData {
	g.contextPkgPath = rec.ID.PkgPath

	// Generated code joins the record's package: body identifiers must not
	// shadow its package-level names and imports must not redeclare them.
	taken := make(map[string]bool, len(rec.Reserved)+rec.Arity()+4)
	for _, name := range rec.Reserved {
		taken[name] = true
	}

	name := rec.ID.Name
	data := &templateData{
		In:               freeName("in", taken),
		Out:              freeName("out", taken),
		Recv:             freeName("v", taken),
		MaskVar:          freeName("mask", taken),
		PackageName:      rec.PkgName,
		Filename:         snakeCase(name) + g.config.FileSuffix,
		RecordName:       name,
		VariantName:      name + "Variant",
		FieldsVar:        name + "VariantFields",
		CubeFunc:         funcName("cube", name),
		RollFunc:         funcName("roll", name),
		CubeSize:         1 << rec.Arity(),
		GenerateCube:     g.config.Cube,
		GenerateRoll:     g.config.Roll,
		GenerateMask:     true,
		GenerateComments: g.config.GenerateComments,
	}

	vars := make([]string, rec.Arity())
	for i := range vars {
		vars[i] = freeName("f"+strconv.Itoa(i), taken)
	}

	// The option package is registered first so it keeps its own name
	// unless the record's package already uses it.
	imports := newImportSet(slices.Collect(maps.Keys(taken))...)
	data.Opt = imports.add(g.config.OptionPkgPath, "option")

	for i, f := range rec.Fields {
		fd := fieldData{
			Name:  f.Name,
			Type:  g.typeRefString(f.Type, imports),
			Var:   vars[i],
			Bit:   i,
			Quote: strconv.Quote(f.Name),
		}

		if tag := f.GetTag("json"); tag != "" {
			fd.Tag = "`json:" + strconv.Quote(tag) + "`"
		}

		if f.Name == "Mask" {
			data.GenerateMask = false
		}

		data.Fields = append(data.Fields, fd)
	}

	for k := 0; k <= len(data.Fields); k++ {
		data.Rolls = append(data.Rolls, data.Fields[:k])
	}

	data.Imports = imports.sorted()

	return data
}

// freeName returns name, or name followed by underscores, whichever is not
// taken yet, and marks the result as taken.
func freeName(name string, taken map[string]bool) string {
	for taken[name] {
		name += "_"
	}

	taken[name] = true

	return name
}
