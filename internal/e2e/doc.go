// Package e2e holds the end-to-end suites. Against the default "stub" target
// they run on an in-process stand-in; with CINESCOPE_TARGET=remote they hit
// the configured Cinescope environment.
package e2e
