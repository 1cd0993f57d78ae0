// Package pipeline sequences the processing steps for an uploaded
// recording: transcription, PDF report generation, MP4 conversion, and
// completion.
//
// Transcription failure is fatal and aborts the run; the PDF and MP4
// steps are best-effort and record their failure without blocking
// completion. Every abnormal termination leaves a populated error field
// on the recording, attributed to a step or to "unknown".
//
// The Runner owns asynchronous execution: triggers are fire-and-forget,
// errors are attributed to the recording ID in logs, and at most one run
// per recording is in flight at a time.
package pipeline
