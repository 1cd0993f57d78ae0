package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Recording describes a recording record in a transport-friendly format.
type Recording struct {
	ID       string   `json:"id"`
	Filename string   `json:"filename"`
	Status   string   `json:"status"`
	Progress Progress `json:"progress"`
	Error    *Error   `json:"error,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`

	VideoPath       string `json:"videoPath,omitempty"`
	TranscriptPath  string `json:"transcriptPath,omitempty"`
	SegmentsPath    string `json:"segmentsPath,omitempty"`
	MP4Path         string `json:"mp4Path,omitempty"`
	PDFPath         string `json:"pdfPath,omitempty"`
	TranslationPath string `json:"translationPath,omitempty"`

	Language           string  `json:"language,omitempty"`
	LanguageConfidence float64 `json:"languageConfidence,omitempty"`
	SegmentsCount      int     `json:"segmentsCount,omitempty"`
	DurationSeconds    float64 `json:"duration,omitempty"`
	FileSizeBytes      int64   `json:"fileSize,omitempty"`

	Translated          bool   `json:"translated"`
	TranslationLanguage string `json:"translationLanguage,omitempty"`

	Synced      bool   `json:"synced"`
	SyncStatus  string `json:"syncStatus,omitempty"`
	SolarCoreID string `json:"solarCoreId,omitempty"`
	SyncedAt    string `json:"syncedAt,omitempty"`
}

// Progress captures step progress information for a recording.
type Progress struct {
	Step       string `json:"step"`
	StepNumber int    `json:"stepNumber"`
	TotalSteps int    `json:"totalSteps"`
	Message    string `json:"message"`
}

// Error mirrors the most recent unrecovered step failure.
type Error struct {
	Step      string `json:"step"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Status is the poll view of a recording's processing state.
type Status struct {
	ID       string   `json:"id"`
	Status   string   `json:"status"`
	Progress Progress `json:"progress"`
	Message  string   `json:"message"`
	Error    *Error   `json:"error,omitempty"`
}

// SyncLogEntry describes one terminal sync outcome.
type SyncLogEntry struct {
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
	SolarCoreID string `json:"solarCoreId,omitempty"`
	Attempts    int    `json:"attempts"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// Screenshot describes one captured still frame.
type Screenshot struct {
	Filename   string  `json:"filename"`
	Timestamp  float64 `json:"timestamp"`
	Path       string  `json:"path"`
	CapturedAt string  `json:"capturedAt,omitempty"`
	SizeBytes  int64   `json:"fileSize"`
}

// RecordingDetail bundles a recording with its sync history and screenshots.
type RecordingDetail struct {
	Recording   Recording      `json:"recording"`
	SyncLog     []SyncLogEntry `json:"syncLog"`
	Screenshots []Screenshot   `json:"screenshots"`
}

// SyncOutcome reports the terminal result of one sync operation.
type SyncOutcome struct {
	Status      string `json:"status"`
	RecordingID string `json:"recordingId"`
	Timestamp   string `json:"timestamp"`
	SolarCoreID string `json:"solarCoreId,omitempty"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
}

// TranslationOutcome reports a completed translation.
type TranslationOutcome struct {
	TranslationPath string `json:"translationPath"`
	SourceLanguage  string `json:"sourceLanguage"`
	TargetLanguage  string `json:"targetLanguage"`
}
