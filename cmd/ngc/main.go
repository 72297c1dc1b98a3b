package main

import "github.com/ng-lang/ng/cmd/ngc/cmd"

func main() {
	cmd.Execute()
}
