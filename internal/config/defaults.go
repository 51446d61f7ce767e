package config

const (
	defaultRecordingsDir        = "~/.local/share/rehearse/recordings"
	defaultStateDir             = "~/.local/share/rehearse"
	defaultLogDir               = "~/.local/share/rehearse/logs"
	defaultSocketPath           = "~/.local/share/rehearse/rehearsed.sock"
	defaultAudioDevice          = "default"
	defaultCaptureWidth         = 1280
	defaultCaptureHeight        = 720
	defaultCaptureFramerate     = 30
	defaultCaptureStartTimeout  = 10
	defaultCaptureStopTimeout   = 30
	defaultAnalysisBaseURL      = "http://127.0.0.1:8000"
	defaultAnalysisTimeout      = 300
	defaultHistoryBackend       = "remote"
	defaultHistoryBaseURL       = "http://127.0.0.1:8000"
	defaultHistoryTimeout       = 15
	defaultTopic                = "hr"
	defaultNotifyRequestTimeout = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			RecordingsDir: defaultRecordingsDir,
			StateDir:      defaultStateDir,
			LogDir:        defaultLogDir,
			SocketPath:    defaultSocketPath,
		},
		Capture: Capture{
			AudioDevice:  defaultAudioDevice,
			Width:        defaultCaptureWidth,
			Height:       defaultCaptureHeight,
			Framerate:    defaultCaptureFramerate,
			StartTimeout: defaultCaptureStartTimeout,
			StopTimeout:  defaultCaptureStopTimeout,
		},
		Analysis: Analysis{
			BaseURL:        defaultAnalysisBaseURL,
			RequestTimeout: defaultAnalysisTimeout,
		},
		History: History{
			Backend:        defaultHistoryBackend,
			BaseURL:        defaultHistoryBaseURL,
			RequestTimeout: defaultHistoryTimeout,
		},
		Interview: Interview{
			AutoSubmit:   true,
			DefaultTopic: defaultTopic,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Recording:      true,
			Scored:         true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
