package gen

import (
	"text/template"
)

// Template for the cube file. Whitespace is normalized by go/format.

var cubeTemplate = template.Must(template.New("cube").Parse(`// Code generated by cube-generator. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

{{if .GenerateComments}}// {{.VariantName}} is {{.RecordName}} with every field optional. The zero value
// has all fields absent.
{{end}}type {{.VariantName}} struct {
{{range .Fields}}	{{.Name}} {{$.Opt}}.Option[{{.Type}}]{{if .Tag}} {{.Tag}}{{end}}
{{end}}}

{{if .GenerateComments}}// {{.FieldsVar}} lists the {{.VariantName}} fields in order.
{{end}}var {{.FieldsVar}} = [...]string{ {{range $i, $f := .Fields}}{{if $i}}, {{end}}{{$f.Quote}}{{end}} }
{{if .GenerateMask}}
{{if .GenerateComments}}// Mask returns the presence bit set of {{.Recv}}: bit i is set when field i is present.
{{end}}func ({{.Recv}} {{.VariantName}}) Mask() uint64 {
	var {{.MaskVar}} uint64
{{range .Fields}}	if {{$.Recv}}.{{.Name}}.IsSome() {
		{{$.MaskVar}} |= 1 << {{.Bit}}
	}
{{end}}	return {{.MaskVar}}
}
{{end}}{{if .GenerateCube}}
{{if .GenerateComments}}// {{.CubeFunc}} expands {{.In}} into all {{.CubeSize}} presence combinations of its
// fields. The first field varies slowest and Some comes before None.
{{end}}func {{.CubeFunc}}({{.In}} {{.RecordName}}) []{{.VariantName}} {
	{{.Out}} := make([]{{.VariantName}}, 0, {{.CubeSize}})
{{range .Fields}}	for _, {{.Var}} := range [2]{{$.Opt}}.Option[{{.Type}}]{ {{- $.Opt}}.Some({{$.In}}.{{.Name}}), {{$.Opt}}.None[{{.Type}}]()} {
{{end}}	{{.Out}} = append({{.Out}}, {{.VariantName}}{ {{range $i, $f := .Fields}}{{if $i}}, {{end}}{{$f.Name}}: {{$f.Var}}{{end}} })
{{range .Fields}}	}
{{end}}	return {{.Out}}
}
{{end}}{{if .GenerateRoll}}
{{if .GenerateComments}}// {{.RollFunc}} expands {{.In}} into its {{len .Rolls}} prefix variants: variant k has
// the first k fields present and the rest absent.
{{end}}func {{.RollFunc}}({{.In}} {{.RecordName}}) []{{.VariantName}} {
	return []{{.VariantName}}{
{{range .Rolls}}		{ {{range $i, $f := .}}{{if $i}}, {{end}}{{$f.Name}}: {{$.Opt}}.Some({{$.In}}.{{$f.Name}}){{end}} },
{{end}}	}
}
{{end}}`))
