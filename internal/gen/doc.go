// Package gen provides deterministic Go code generation for cube and roll
// transformations.
//
// Generation approach uses text/template + go/format. For every record the
// generated file holds:
//   - <Name>Variant: the record with each field wrapped in option.Option
//   - <Name>VariantFields: the field names in variant order
//   - Cube<Name>: all 2^N presence combinations, nested loops with the first
//     field outermost
//   - Roll<Name>: the N+1 prefix variants, as an unrolled literal
package gen
