// Package sema is the type checker. It consumes a resolved file, settles
// every signature and expression type, and enforces the operator and
// mutability rules. Types are exact; there are no implicit conversions
// between int and float. One failing expression takes the error type and
// stops reporting, so a single mistake produces a single diagnostic.
package sema
