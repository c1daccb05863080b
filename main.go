package main

import "github.com/railsmonk/svnlens/cmd"

func main() {
	cmd.Run()
}
