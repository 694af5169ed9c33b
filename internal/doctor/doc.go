// Package doctor implements read-only health checks for an installed
// secret-manager toolkit: native tool availability, deployed asset state, and
// shell configuration.
//
// Checks report pass, warning, or error; warnings cover conditions the
// toolkit degrades gracefully under (a missing GUI application, an
// unclassifiable shell), errors cover what would make the toolkit unusable.
package doctor
