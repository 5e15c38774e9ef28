// Package grammar defines the concrete syntax of formulas.
//
// A [Lexicon] is a versioned YAML document listing token rules by role; the
// built-in one is embedded from fol.yaml. [Compile] turns a lexicon into a
// [Grammar] whose engine produces a concrete parse tree of [Node] values.
// Rule tags name the syntactic construct of each node (expr, relnpolish,
// funcinfix, quantified, ...) and are what the parse package lowers into
// formulas.
//
// Connectives accept both the ASCII symbols (!, &&, ||, ->, <->) and their
// typeset forms (¬, ∧, ∨, →, ↔), and quantifiers both the words all and
// exists and the symbols ∀ and ∃, so either rendering of a formula parses
// back.
package grammar
