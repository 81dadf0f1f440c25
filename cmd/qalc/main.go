// qalc is an interpreter for a small quantum-circuit algebra language.
//
// Programs are sequences of statements ending in ';' over integers, complex
// numbers, state vectors and gate matrices:
//
//	let bell = CNOT(0, 1) * (H(0) . I(0));
//	bell * |0>;
//
// Usage:
//
//	# Evaluate scripts, printing one value per statement
//	qalc run bell.qc
//
//	# Re-run whenever a script changes
//	qalc run --watch bell.qc
//
//	# Evaluate inline source
//	qalc eval "H(0) * |0>"
//
//	# Interactive session
//	qalc repl
//
//	# Report every static error without running
//	qalc check scripts/*.qc
//
//	# Apply a YAML circuit to a basis state
//	qalc circuit bell.yaml
package main

func main() {
	Execute()
}
