// Package mberr defines the error values reported while loading the
// mobile broadband provider catalog and while pushing a selected plan to
// the telephony daemon.
//
// Errors carry a Type (which layer failed), a Tag (what failed) and a
// Severity. Error-severity values abort catalog initialization;
// warning-severity values are reported for single skipped entries and
// never stop a load.
package mberr
