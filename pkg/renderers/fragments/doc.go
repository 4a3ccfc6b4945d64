// Package fragments renders record documents into the HTML fragments spliced
// into page sections. There is one renderer per record kind (topics, news,
// events, company, history); each executes its embedded template once per
// record and joins the results with newlines. Field values are embedded
// verbatim unless a sanitizer is configured.
package fragments
