// Package cartera simulates a collections portfolio workflow over a synthetic,
// in-memory table of accounts.
//
// The workflow is a one way pipeline:
//   - Generate builds the base Table from a seed. The table never changes.
//   - A Filter excludes accounts by Status, keeps the selected Portfolio
//     buckets and optionally applies a CEL Predicate. NewView holds the result.
//   - NewReport aggregates a view: totals, per portfolio productivity, per
//     status and per due date breakdowns.
//   - View.Dispatch simulates the automated notice sent to every visible account.
//
// A Session ties the stages together for an interactive user, recomputing the
// view and its report each time a parameter changes.
//
// This package serves as the foundational logic for the `ccs` command-line
// tool and its web dashboard.
package cartera
