// Package filter parses and evaluates the row filter expressions typed into
// column filter and search boxes.
//
// Expressions use a small JavaScript-like grammar:
//
//	col_price > 10 && col_name.toLowerCase().includes("ab")
//	row.index % 2 == 0 || isNaN(col_score)
//
// Evaluation follows loose JavaScript semantics for comparison, equality,
// string concatenation and truthiness. There is no assignment, no loops and
// no access to anything beyond the variables bound by the Scope.
package filter
