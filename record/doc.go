// Package record expands struct values into cube and roll variants at
// runtime, using reflection instead of generated code.
//
// A record is a struct type; its fields, in declaration order, form the
// FieldList. From a FieldList two transformations can be built:
//   - BuildCuber: every present/absent combination of the fields, 2^N
//     variants, first field varying slowest
//   - BuildRoller: the N+1 prefix variants, from all-absent to all-present
//
// Key types:
//   - Field, FieldList: introspected record shape
//   - Variant: one expanded value, an ordered list of option.Option[any]
//   - Transform: a built transformation over values of one record type
//   - Transformation[T]: typed wrapper returned by Cuber and Roller, cached
//     per type
package record
