// Package batch imports and exports object metadata as csv.
//
// Imports validate the whole input first: headers, then every row. All problems are
// reported together and nothing is written unless the input is entirely valid.
package batch
