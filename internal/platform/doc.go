// Package platform holds filesystem operations whose behavior differs by OS.
// Permission bits are applied on Unix and ignored on Windows.
package platform
