package main

import "github.com/devicelab-dev/adbpilot/pkg/cli"

func main() {
	cli.Execute()
}
