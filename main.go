package main

import "github.com/radarlab/fmcw-ranging/cmd"

func main() {
	cmd.Execute()
}
