// main is the entry point for the outrank CLI.
package main

import (
	"github.com/huangsam/outrank/cmd"
	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}
	iocache.CloseCaching()

	if err != nil {
		contract.LogFatal("outrank failed", err)
	}
}
