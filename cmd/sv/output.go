package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HarvestResponse summarizes a finished roster crawl.
type HarvestResponse struct {
	Status   string `json:"status"`
	Authors  int    `json:"authors"`
	Skipped  int    `json:"skipped"`
	Records  int    `json:"records"`
	Database string `json:"database"`
	CSV      string `json:"csv,omitempty"`
}

// SingleResponse summarizes a single-profile crawl.
type SingleResponse struct {
	Status  string `json:"status"`
	Faculty string `json:"faculty"`
	Profile string `json:"profile"`
	Records int    `json:"records"`
	CSV     string `json:"csv"`
}

// ExportResponse summarizes a CSV export from the dataset.
type ExportResponse struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
	CSV     string `json:"csv"`
}

// YearlyDocSummary is one written yearly document.
type YearlyDocSummary struct {
	Year    int    `json:"year"`
	Path    string `json:"path"`
	Entries int    `json:"entries"`
}

// YearlyResponse summarizes a yearly document export.
type YearlyResponse struct {
	Status string             `json:"status"`
	Dir    string             `json:"dir"`
	Docs   []YearlyDocSummary `json:"docs"`
}
