package main

import "github.com/EricA1019/gamified-checklist/cmd/qlog/root"

func main() {
	root.Execute()
}
