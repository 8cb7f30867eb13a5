package main

import "dex-ingest/cmd"

func main() {
	cmd.Execute()
}
