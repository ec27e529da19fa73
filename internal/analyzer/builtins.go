package analyzer

import (
	"github.com/funvibe/funpipe/internal/config"
	"github.com/funvibe/funpipe/internal/symbols"
	"github.com/funvibe/funpipe/internal/typesystem"
)

// RegisterBuiltins defines the types of the built-in functions in table.
// Registration is idempotent per table, so a REPL-style caller can run a
// pipeline repeatedly against the same scope.
func RegisterBuiltins(table *symbols.SymbolTable) {
	if table.IsDefinedLocally(config.IntToStringFuncName) {
		return
	}

	integer := typesystem.IntType
	float := typesystem.FloatType
	str := typesystem.StringType
	boolean := typesystem.BoolType
	nil_ := typesystem.NilType

	table.DefineBuiltin(config.IntToStringFuncName,
		typesystem.Fn([]typesystem.Type{integer}, str))
	table.DefineBuiltin(config.FloatToStringFuncName,
		typesystem.Fn([]typesystem.Type{float}, str))
	table.DefineBuiltin(config.BoolToStringFuncName,
		typesystem.Fn([]typesystem.Type{boolean}, str))
	table.DefineBuiltin(config.StringLengthFuncName,
		typesystem.Fn([]typesystem.Type{str}, integer))
	table.DefineBuiltin(config.StringConcatFuncName,
		typesystem.Fn([]typesystem.Type{str, str}, str))
	table.DefineBuiltin(config.StringRepeatFuncName,
		typesystem.Fn([]typesystem.Type{str, integer}, str))
	table.DefineBuiltin(config.PrintlnFuncName,
		typesystem.Fn([]typesystem.Type{str}, nil_))
}
