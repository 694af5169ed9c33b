// Package platform classifies the host into the closed set of OS variants
// the installer knows how to provision.
//
// Detection is a pure query over the OS identifier and the executable search
// path; it has no side effects and is computed once per run.
package platform
