package main

import "github.com/JCSmillie/AlbrightReunion/cmd"

func main() {
	cmd.Execute()
}
