package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateWhisper(); err != nil {
		return err
	}
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	if err := c.validateSolarCore(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateWhisper() error {
	switch c.Whisper.Mode {
	case WhisperModeSubprocess:
		if c.Whisper.ScriptPath == "" {
			return errors.New("whisper.script_path is required in subprocess mode")
		}
	case WhisperModeRemote:
		if c.Whisper.APIKey == "" {
			return errors.New("whisper.api_key is required in remote mode")
		}
	default:
		return fmt.Errorf("whisper.mode must be \"subprocess\" or \"remote\", got %q", c.Whisper.Mode)
	}
	if c.Whisper.TimeoutSeconds <= 0 {
		return errors.New("whisper.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateFFmpeg() error {
	if c.FFmpeg.Binary == "" {
		return errors.New("ffmpeg.binary must be set")
	}
	if c.FFmpeg.TimeoutSeconds <= 0 {
		return errors.New("ffmpeg.timeout_seconds must be positive")
	}
	if c.FFmpeg.CRF < 0 || c.FFmpeg.CRF > 51 {
		return errors.New("ffmpeg.crf must be between 0 and 51")
	}
	return nil
}

func (c *Config) validateSolarCore() error {
	if c.SolarCore.URL == "" {
		return errors.New("solar_core.url must be set")
	}
	if c.SolarCore.MaxAttempts <= 0 {
		return errors.New("solar_core.max_attempts must be positive")
	}
	if c.SolarCore.HealthTimeoutSeconds <= 0 {
		return errors.New("solar_core.health_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json", "":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}
