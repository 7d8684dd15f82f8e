// Package mir is the mid-level IR: functions of basic blocks holding
// assignment and call instructions, each block closed by exactly one
// terminator. Lowering consumes a checked AST; it is the last stage that
// can diagnose anything (a missing return needs control flow), after it
// the module is pure data for the backend and the textual dump.
package mir
