// Package validator runs static checks over a compiled qalc program.
//
// Compilation only guarantees that a program is well formed. The validator
// finds problems that would otherwise surface one at a time during
// evaluation, and reports all of them together:
//
//   - Scope: variables read before any assignment reaches them, taking
//     clear() into account
//   - Calls: gate calls whose literal qubit indices are out of range or
//     repeated
//
// Usage:
//
//	program, err := parser.Compile(src)
//	if err != nil {
//	    return err
//	}
//	if err := validator.NewValidator().Validate(program); err != nil {
//	    // err is an *errors.ErrorList
//	}
package validator
