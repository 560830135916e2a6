package isoview

import (
	"os"
	"runtime"
)

// BrowserEnv forces client mode when set to a non-empty value.
const BrowserEnv = "ISOVIEW_BROWSER"

var serverMode = detectServer()

func detectServer() bool {
	return runtime.GOOS != "js" && os.Getenv(BrowserEnv) == ""
}

// IsServer reports whether the process runs in server mode. It is decided
// once at startup.
func IsServer() bool { return serverMode }
