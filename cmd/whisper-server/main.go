package main

import (
	"whisper-server/cmd/whisper-server/cmd"
)

// @title Whisper Server API
// @version 1.0
// @description Speech-to-text over HTTP: upload an audio file, get its transcript back.
// @BasePath /
func main() {
	cmd.Execute()
}
