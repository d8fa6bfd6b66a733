// Package modarith provides the fixed-width integer arithmetic shared by the
// period engine and the orchestrator.
//
// Modular exponentiation runs on saferith.Nat so that squaring residues close
// to N never overflows a machine word. Callers are expected to have validated
// the modulus range; functions here do not return errors.
package modarith
