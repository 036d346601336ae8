//go:build !cgo

package main

// Without cgo the run history always goes through modernc.org/sqlite and
// --cgo-sqlite is ignored.
const cgoSQLite = false
