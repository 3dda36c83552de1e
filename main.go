package main

import "github.com/signate-deploy/signate-deploy/cmd"

func main() {
	cmd.Execute()
}
