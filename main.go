package main

import "github.com/naka-gawa/github-stats-badge/cmd"

func main() {
	cmd.Execute()
}
