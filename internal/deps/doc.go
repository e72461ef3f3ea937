// Package deps checks that external executables are reachable on PATH.
package deps
