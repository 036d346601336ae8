//go:build cgo

package main

// cgo builds also register mattn/go-sqlite3 as "sqlite3", which --cgo-sqlite
// selects for the run history database.
import _ "github.com/mattn/go-sqlite3"

const cgoSQLite = true
