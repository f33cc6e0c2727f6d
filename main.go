package main

import "github.com/bookspot/lambdapack/cmd"

func main() {
	cmd.Execute()
}
