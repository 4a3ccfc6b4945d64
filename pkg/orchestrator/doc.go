// Package orchestrator runs the data → fragment → page pipeline for every
// configured binding. Each binding loads one data file, renders it with a
// named renderer and splices the result into one page section. Bindings are
// independent: a failure is recorded in the Report and the run continues.
package orchestrator
