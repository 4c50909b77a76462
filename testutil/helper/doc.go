// Package helper provides test doubles and fixtures shared by the tests of this module:
// spies for the logging, metrics, and tracing interfaces, and a controllable clock.
package helper
