package main

import (
	"fmt"
	"os"

	"github.com/oakwood-commons/baiacufmt/cmd"
	"github.com/oakwood-commons/baiacufmt/pkg/logger"
)

func main() {
	exitCode := 0
	if err := cmd.Execute(); err != nil {
		if !cmd.Reported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		exitCode = 1
	}

	logger.Sync()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
