package config

const SourceFileExt = ".fp"

// ManifestFileName is the per-project manifest looked up next to the checked
// sources.
const ManifestFileName = "funpipe.yml"

// Version is the tool version reported by --version and matched against a
// manifest `requires` constraint. Overridden at release time via ldflags.
var Version = "0.4.1"

// PipeVariable is the name bound to the intermediate value of each pipeline
// step. The `$` prefix keeps it out of the surface language: the lexer
// rejects `$`, so user code can neither shadow nor read it.
const PipeVariable = "$pipe"

// Built-in function names
const (
	IntToStringFuncName   = "int_to_string"
	FloatToStringFuncName = "float_to_string"
	BoolToStringFuncName  = "bool_to_string"
	StringLengthFuncName  = "string_length"
	StringConcatFuncName  = "string_concat"
	StringRepeatFuncName  = "string_repeat"
	PrintlnFuncName       = "println"
)

// Built-in type names
const (
	IntTypeName    = "Int"
	FloatTypeName  = "Float"
	StringTypeName = "String"
	BoolTypeName   = "Bool"
	NilTypeName    = "Nil"
)
