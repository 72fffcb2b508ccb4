/*
Package mlatu is the syntactic front end of the mlatu compiler.

mlatu is a stack-based (concatenative) programming language. This module
turns source text into an unchecked program representation, a Fragment of
declarations, definitions, type definitions, metadata, name synonyms and
top-level code, ready for a downstream type checker. Package structure is
as follows:

■ scanner: tokenization via a lexmachine DFA, plus the layout pass that
turns indentation into explicit block delimiters.

■ ast: the program data model of qualified names, type signatures, terms,
elements and fragments, all as closed tagged unions.

■ parser: a backtracking recursive-descent parser over the located-token
stream, performing the syntax-directed desugarings (sections, vector
literals, parameter bindings, match/if chains, record accessors).

The base package contains data types which are used throughout all the
other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package mlatu
