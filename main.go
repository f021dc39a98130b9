package main

import "github.com/shlama/shlama/cmd"

func main() {
	cmd.Execute()
}
