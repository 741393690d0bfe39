// Command swipenav replays swipe navigation scenarios against an
// in-memory dashboard document, for debugging gesture and configuration
// behavior without a browser.
package main

import (
	"os"

	"github.com/MarkGodwin/hass-swipe-navigation/cmd/swipenav/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
