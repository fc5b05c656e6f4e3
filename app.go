package main

import "github.com/masmgr/gitcorpus/cmd"

func main() {
	cmd.Run()
}
