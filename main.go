package main

import "github.com/KaramelBytes/fifaviz-cli/cmd"

func main() {
	cmd.Execute()
}
