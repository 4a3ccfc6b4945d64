// Package dataset defines the contracts for loading record payloads: where a
// payload comes from (Source), the decoded sequence of raw records (Document)
// and the Loader that turns one into the other. Implementations live under
// internal/loader.
package dataset
