package oauth

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"
)

const readHeaderTimeout = 5 * time.Second

// openURL is replaced in tests.
var openURL = func(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}

// Open opens url in the user's default browser.
func Open(url string) error {
	return openURL(url)
}
