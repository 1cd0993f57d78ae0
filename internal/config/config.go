package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration. All recording artifacts live
// under DataDir in fixed per-kind subdirectories (video, mp4, transcripts,
// pdf, translations, frames) alongside the metadata database.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Whisper engine modes.
const (
	WhisperModeSubprocess = "subprocess"
	WhisperModeRemote     = "remote"
)

// Whisper contains configuration for the transcription engine.
// Mode selects the engine variant once at configuration time:
// "subprocess" invokes the bundled python script, "remote" calls an
// OpenAI-compatible transcription API.
type Whisper struct {
	Mode           string `toml:"mode"`
	Model          string `toml:"model"`
	ScriptPath     string `toml:"script_path"`
	PythonBin      string `toml:"python_bin"`
	APIKey         string `toml:"api_key"`
	APIBaseURL     string `toml:"api_base_url"`
	Language       string `toml:"language"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// PDF contains configuration for the report generator script.
type PDF struct {
	ScriptPath     string `toml:"script_path"`
	PythonBin      string `toml:"python_bin"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// FFmpeg contains configuration for MP4 conversion.
type FFmpeg struct {
	Binary         string `toml:"binary"`
	VideoBitrate   string `toml:"video_bitrate"`
	AudioBitrate   string `toml:"audio_bitrate"`
	Preset         string `toml:"preset"`
	CRF            int    `toml:"crf"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Translation contains configuration for the remote text-generation
// service used to translate transcripts.
type Translation struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// SolarCore contains configuration for the external system of record
// that completed recordings are synced to.
type SolarCore struct {
	URL                  string `toml:"url"`
	APIKey               string `toml:"api_key"`
	HealthTimeoutSeconds int    `toml:"health_timeout_seconds"`
	MaxAttempts          int    `toml:"max_attempts"`
}

// Workflow contains pipeline timing configuration.
type Workflow struct {
	MinFreeSpaceGiB int `toml:"min_free_space_gib"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for the recorder pipeline.
// It is constructed once at process start and passed by reference into the
// orchestrator, sync client, and translation wrapper; no component reads
// ambient environment state directly.
type Config struct {
	Paths       Paths       `toml:"paths"`
	Whisper     Whisper     `toml:"whisper"`
	PDF         PDF         `toml:"pdf"`
	FFmpeg      FFmpeg      `toml:"ffmpeg"`
	Translation Translation `toml:"translation"`
	SolarCore   SolarCore   `toml:"solar_core"`
	Workflow    Workflow    `toml:"workflow"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/dashrec/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a config file was actually found.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("dashrec.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// WriteSample writes the embedded sample configuration to path.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists: %s", expanded)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if c.Whisper.ScriptPath, err = expandPath(c.Whisper.ScriptPath); err != nil {
		return err
	}
	if c.PDF.ScriptPath, err = expandPath(c.PDF.ScriptPath); err != nil {
		return err
	}
	c.Whisper.Mode = strings.ToLower(strings.TrimSpace(c.Whisper.Mode))
	c.SolarCore.URL = strings.TrimRight(strings.TrimSpace(c.SolarCore.URL), "/")
	c.Translation.BaseURL = strings.TrimRight(strings.TrimSpace(c.Translation.BaseURL), "/")
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
