package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/caro-client/internal/entity"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string `yaml:"log-file" env:"LOG_FILE" env-default:"caro-client.log"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:""`
	Engine   Engine `yaml:"engine"`
	Game     Game   `yaml:"game"`
	Redis    Redis  `yaml:"redis"`
}

type Engine struct {
	URL     string        `yaml:"url" env:"ENGINE_URL" env-default:"http://localhost:5000"`
	Timeout time.Duration `yaml:"timeout" env:"ENGINE_TIMEOUT" env-default:"30s"`
}

type Game struct {
	Rows         int           `yaml:"rows" env:"GAME_ROWS" env-default:"15"`
	Cols         int           `yaml:"cols" env:"GAME_COLS" env-default:"15"`
	Difficulty   int           `yaml:"difficulty" env:"GAME_DIFFICULTY" env-default:"2"`
	WinStreak    int           `yaml:"win-streak" env:"GAME_WIN_STREAK" env-default:"5"`
	FirstMove    string        `yaml:"first-move" env:"GAME_FIRST_MOVE" env-default:"human"`
	OpeningDelay time.Duration `yaml:"opening-delay" env:"GAME_OPENING_DELAY" env-default:"500ms"`
}

type Redis struct {
	Enabled bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	TTL     time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"168h"`
}

// MustLoad - load all configurations in config.yml file. A missing file is
// not an error: environment variables and defaults are used instead.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// Settings - game settings pulled into their legal ranges.
func (that *Game) Settings() entity.Settings {
	return entity.Settings{
		Rows: that.Rows,
		Cols: that.Cols,
		Rules: entity.Rules{
			WinStreak:  that.WinStreak,
			Difficulty: that.Difficulty,
		},
		FirstMove: entity.ParseFirstMove(that.FirstMove),
	}.Clamped()
}
