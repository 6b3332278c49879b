package main

import (
	"github.com/littlehorse-enterprises/lh-user-tasks-bridge-sub000/cmd"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd.SetVersion(version, buildTime)
	cmd.Execute()
}
