// The main package for the notice-crawler executable.
package main

import "github.com/kookmin-feed/notice-crawler/cmd"

func main() {
	cmd.Execute()
}
