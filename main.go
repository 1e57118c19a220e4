// Command bffsoup runs a primordial-soup artificial-life experiment over
// the 10-instruction BFF dialect: a fixed population of tapes is paired,
// co-executed, and optionally mutated across discrete epochs, while
// lineage statistics stream to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/dgedye-lab/bffsoup/config"
	"github.com/dgedye-lab/bffsoup/driver"
	"github.com/dgedye-lab/bffsoup/utils"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "bffsoup: %v\n", err)
		os.Exit(1)
	}

	logger := utils.DefaultLogger("bffsoup")

	if err := driver.Run(cfg, os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "bffsoup: %v\n", err)
		os.Exit(1)
	}
}
