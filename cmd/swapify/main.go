package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/swapify/internal/cli"
	"github.com/vvka-141/swapify/pkg/swapify"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(swapify.ExitPanic)
		}
	}()

	if os.Getenv("SWAPIFY_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(swapify.ExitCodeForError(err))
	}
}
