package main

import "github.com/kaesv/studyflow/cmd"

func main() {
	cmd.Execute()
}
