// Package sqlite implements web storage on an embedded SQLite database.
package sqlite
