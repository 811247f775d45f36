package replay

import (
	"io"
)

// ShowHelp prints usage information for the replay tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `StudyTrack Replay Tool
======================

Posts recorded score submissions to a running StudyTrack service, in order.

Usage:
  go run ./cmd/replay -file submissions.json [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -file string
        JSON array of {"name","score","course","discipline"} objects
  -timeout duration
        HTTP request timeout (default 10s)
  -help
        Show this help message

Example file:
  [
    {"name": "Ana", "score": 8.5, "course": "development", "discipline": "Databases"},
    {"name": "Ana", "score": "9.5", "course": "development", "discipline": "Databases"}
  ]
`)
}
