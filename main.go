package main

import (
	"github.com/agudeloromero/mmseq-viral-db/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
