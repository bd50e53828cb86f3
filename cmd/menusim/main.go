// Command menusim runs a menu on the desktop or renders it to a PNG.
package main

import (
	"log"
	"runtime"
)

func init() {
	// SDL must be driven from the main thread
	runtime.LockOSThread()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
