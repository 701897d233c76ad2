// Package example is a Go package documented by its package comment.
//
// # Usage
//
// Features:
//   - **Alpha**: list items stay intact.
//   - **Beta**: so does bold text.
package example

// Answer is exported so the package is not empty.
const Answer = 42
