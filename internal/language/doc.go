// Package language provides unified language code normalization and
// display-name mapping.
//
// Transcription, translation, and CLI output all consume language codes;
// the conversions live here so each caller does not keep its own table.
package language
