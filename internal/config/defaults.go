package config

const (
	defaultDataDir = "~/.local/share/dashrec/uploads"
	defaultLogDir  = "~/.local/share/dashrec/logs"

	defaultWhisperMode           = "subprocess"
	defaultWhisperModel          = "base"
	defaultWhisperScriptPath     = "scripts/transcribe.py"
	defaultWhisperPythonBin      = "python3"
	defaultWhisperAPIBaseURL     = "https://api.openai.com/v1"
	defaultWhisperTimeoutSeconds = 600

	defaultPDFScriptPath     = "scripts/generate_pdf.py"
	defaultPDFTimeoutSeconds = 120

	defaultFFmpegBinary         = "ffmpeg"
	defaultFFmpegVideoBitrate   = "2500k"
	defaultFFmpegAudioBitrate   = "192k"
	defaultFFmpegPreset         = "veryfast"
	defaultFFmpegCRF            = 23
	defaultFFmpegTimeoutSeconds = 300

	defaultTranslationBaseURL        = "https://api.deepseek.com"
	defaultTranslationModel          = "deepseek-chat"
	defaultTranslationTimeoutSeconds = 120

	defaultSolarCoreURL           = "http://localhost:8010"
	defaultSolarCoreHealthTimeout = 5
	defaultSolarCoreMaxAttempts   = 3

	defaultMinFreeSpaceGiB = 1

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Whisper: Whisper{
			Mode:           defaultWhisperMode,
			Model:          defaultWhisperModel,
			ScriptPath:     defaultWhisperScriptPath,
			PythonBin:      defaultWhisperPythonBin,
			APIBaseURL:     defaultWhisperAPIBaseURL,
			TimeoutSeconds: defaultWhisperTimeoutSeconds,
		},
		PDF: PDF{
			ScriptPath:     defaultPDFScriptPath,
			PythonBin:      defaultWhisperPythonBin,
			TimeoutSeconds: defaultPDFTimeoutSeconds,
		},
		FFmpeg: FFmpeg{
			Binary:         defaultFFmpegBinary,
			VideoBitrate:   defaultFFmpegVideoBitrate,
			AudioBitrate:   defaultFFmpegAudioBitrate,
			Preset:         defaultFFmpegPreset,
			CRF:            defaultFFmpegCRF,
			TimeoutSeconds: defaultFFmpegTimeoutSeconds,
		},
		Translation: Translation{
			BaseURL:        defaultTranslationBaseURL,
			Model:          defaultTranslationModel,
			TimeoutSeconds: defaultTranslationTimeoutSeconds,
		},
		SolarCore: SolarCore{
			URL:                  defaultSolarCoreURL,
			HealthTimeoutSeconds: defaultSolarCoreHealthTimeout,
			MaxAttempts:          defaultSolarCoreMaxAttempts,
		},
		Workflow: Workflow{
			MinFreeSpaceGiB: defaultMinFreeSpaceGiB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
