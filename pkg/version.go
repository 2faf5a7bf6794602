// Package inktrace holds build metadata shared by the inktrace commands.
package inktrace

// Version is the current inktrace release.
const Version = "0.1.0"
