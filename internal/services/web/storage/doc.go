// Package storage declares persistence interfaces for web-owned data.
//
// Experiment progress mirrors what the survey API already recorded so the
// web tier can route participants without a round trip. Cache entries are
// derived reads and can always be rebuilt from the API.
package storage
