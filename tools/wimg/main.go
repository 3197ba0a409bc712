package main

import (
	"fmt"
	"os"

	"webimages.io/tools/wimg/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
