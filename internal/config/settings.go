package config

import "fmt"

// Settings holds the process configuration shared by all commands.
type Settings struct {
	ArenaWidth  int
	ArenaHeight int
	Scheme      string // "wasd" or "arrows"; empty means ask
	AssetDir    string
	LogLevel    string
	LogFile     string

	SSHHost    string
	SSHPort    string
	SSHHostKey string

	WebHost string
	WebPort string
}

// Load reads .env (if present) and the environment into Settings.
func Load() (Settings, error) {
	if err := LoadDotEnv(); err != nil {
		return Settings{}, err
	}

	width, err := GetEnvInt("ARENA_WIDTH", DefaultArenaWidth)
	if err != nil {
		return Settings{}, err
	}
	height, err := GetEnvInt("ARENA_HEIGHT", DefaultArenaHeight)
	if err != nil {
		return Settings{}, err
	}
	if width < MinArenaSize || height < MinArenaSize {
		return Settings{}, fmt.Errorf("arena %dx%d smaller than %d: %w", width, height, MinArenaSize, ErrInvalidValue)
	}

	return Settings{
		ArenaWidth:  width,
		ArenaHeight: height,
		Scheme:      GetEnv("KEY_SCHEME", ""),
		AssetDir:    GetEnv("ASSET_DIR", "assets"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		LogFile:     GetEnv("LOG_FILE", ""),
		SSHHost:     GetEnv("SSH_HOST", "::"),
		SSHPort:     GetEnv("SSH_PORT", "2222"),
		SSHHostKey:  GetEnv("SSH_HOST_KEY", ".ssh/host_key"),
		WebHost:     GetEnv("WEB_HOST", "0.0.0.0"),
		WebPort:     GetEnv("WEB_PORT", "8080"),
	}, nil
}
