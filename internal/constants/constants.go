// Package constants defines application-wide constants and version information.
package constants

import "runtime"

// Name is the program name used in version output and the status report
const Name = "seasonswap"

// Version holds the application version information
const Version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH
