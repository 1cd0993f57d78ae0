// Package whisper provides speech-to-text transcription for uploaded
// recordings.
//
// Two engines implement the same capability: a subprocess engine that
// drives a local Python transcription script, and a remote engine that
// calls an OpenAI-compatible audio transcription API. The engine is
// selected once from configuration; callers only see the Engine
// interface.
package whisper
