// Command pagesim simulates page-replacement policies from the command line
// and serves them to a browser.
package main

import (
	"github.com/tebeka/atexit"

	"github.com/sarchlab/pagesim/pagesim/cmd"
)

func main() {
	cmd.Execute()
	atexit.Exit(0)
}
