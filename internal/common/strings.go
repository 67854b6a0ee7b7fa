package common

// UnknownStr is the String() value of enum types outside their known range.
const UnknownStr = "unknown"

// AnyTypeStr is used in generated code where a type cannot be resolved.
const AnyTypeStr = "any"

// AppName names the program in logs and generated file headers.
const AppName = "cube-generator"
