package cli

import "os"

// DetectTerminal names the terminal this process appears to run in, from
// environment evidence alone. Used by --detect-terminal.
func DetectTerminal() string {
	if program := os.Getenv("TERM_PROGRAM"); program != "" {
		return program
	}
	if term := os.Getenv("TERM"); term != "" {
		return term
	}
	return "unknown"
}
