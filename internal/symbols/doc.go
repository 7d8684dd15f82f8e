// Package symbols builds the lexical scope tree for a parsed file and
// binds every identifier to the symbol it names. Functions and externs
// are hoisted to file scope; variables become visible at the end of
// their own declaration. The checker consumes the resulting Table and
// bindings; this package never looks at types beyond installing the
// prelude signatures.
package symbols
