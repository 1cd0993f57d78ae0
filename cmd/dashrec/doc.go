// Command dashrec manages screen recordings: it registers uploads,
// drives the processing pipeline, and exposes status, sync, translation,
// and cleanup operations from the terminal.
package main
