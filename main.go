package main

import "github.com/naka-gawa/github-devcard/cmd"

func main() {
	cmd.Execute()
}
