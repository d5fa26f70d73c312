// Package initsafety implements a static initialization-safety checker for
// dws class bodies.
//
// It walks a class template as if it were being constructed, tracking which
// fields are definitely initialized at each program point, which values are
// only partially constructed, and which calls may escape to code that
// observes a partially-built object. Violations are reported as Effect
// values rather than raised as errors; the checker never aborts on a
// violation and never mutates the tree it walks.
//
// The analysis is intraprocedural: method bodies are re-evaluated at each
// call site with caller-supplied argument facts (LatentInfo), guarded by a
// per-class recursion set so cyclic call graphs still terminate.
package initsafety
