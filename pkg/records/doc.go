// Package records holds the typed record shapes rendered into page sections
// (topics, news, events, company fields, history) and the decoding rules that
// turn raw dataset records into them.
//
// A record key listed as required must be present; a present but empty string
// is accepted. Company values are a tagged variant resolved at decode time:
// either plain text or a staff list.
package records
