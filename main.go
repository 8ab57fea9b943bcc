package main

import "github.com/MyCarrier-DevOps/go-versionheight/cmd"

func main() {
	cmd.Execute()
}
