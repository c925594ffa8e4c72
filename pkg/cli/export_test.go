package cli

// RunWithWriters runs the CLI with explicit output writers
var RunWithWriters = run
