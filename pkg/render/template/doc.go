// Package template defines the template renderer seam the fragment renderers
// execute their record templates through. The pongo2-backed implementation
// lives in the gotemplate subpackage.
package template
