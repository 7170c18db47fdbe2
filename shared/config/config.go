package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"github.com/fourchess/fourchess/shared/domain"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Http           Http               `yaml:"http"`
	Log            Log                `yaml:"log"`
	ThreadsPerPage int                `yaml:"threads_per_page" validate:"required,gt=0"`
	MaxTextBytes   int64              `yaml:"max_text_bytes" validate:"required,gt=0"`
	Media          Media              `yaml:"media"`
	BoardCacheTTL  time.Duration      `yaml:"board_cache_ttl"`
	Boards         []domain.BoardInfo `yaml:"boards" validate:"required,min=1,unique=Id,dive"`
}

type Http struct {
	Port            int           `yaml:"port" validate:"required,gt=0,lt=65536"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	HSTS            bool          `yaml:"hsts"`
}

type Log struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	JSON  bool   `yaml:"json"`
}

type Media struct {
	ImageRoot      string        `yaml:"image_root" validate:"required"`
	VideoRoot      string        `yaml:"video_root" validate:"required"`
	MaxBytes       int64         `yaml:"max_bytes" validate:"required,gt=0"`
	MaxImagePixels int           `yaml:"max_image_pixels" validate:"required,gt=0"`
	GCInterval     time.Duration `yaml:"gc_interval"` // 0 disables the orphaned media collector
	// GCSafetyAge is how long an unreferenced file must sit unmodified before
	// the collector deletes it. An upload is only unreferenced until its
	// request finishes, so this must outlast http read_timeout + write_timeout.
	GCSafetyAge time.Duration `yaml:"gc_safety_age"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
	SSLMode  string `yaml:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `yaml:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `yaml:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type Redis struct {
	Addr     string `yaml:"addr"` // empty selects the in-process cache
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Private struct {
	Pg              Pg     `yaml:"pg"`
	Redis           Redis  `yaml:"redis"`
	AdminSecret     string `yaml:"admin_secret" validate:"required_without=AdminSecretHash"`
	AdminSecretHash string `yaml:"admin_secret_hash" validate:"required_without=AdminSecret"`
}

func (p *Public) setDefaults() {
	if p.Http.ReadTimeout == 0 {
		p.Http.ReadTimeout = 30 * time.Second
	}
	if p.Http.WriteTimeout == 0 {
		p.Http.WriteTimeout = 60 * time.Second
	}
	if p.Http.ShutdownTimeout == 0 {
		p.Http.ShutdownTimeout = 10 * time.Second
	}
	if p.Log.Level == "" {
		p.Log.Level = "info"
	}
	if p.BoardCacheTTL == 0 {
		p.BoardCacheTTL = 10 * time.Minute
	}
	if p.Media.GCSafetyAge == 0 {
		p.Media.GCSafetyAge = time.Hour
	}
}

func (p *Private) setDefaults() {
	if p.Pg.SSLMode == "" {
		p.Pg.SSLMode = "disable"
	}
	if p.Pg.MaxOpenConns == 0 {
		p.Pg.MaxOpenConns = 25
	}
	if p.Pg.MaxIdleConns == 0 {
		p.Pg.MaxIdleConns = 10
	}
	if p.Pg.ConnMaxLifetime == 0 {
		p.Pg.ConnMaxLifetime = 5 * time.Minute
	}
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err = yaml.Unmarshal(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	public.setDefaults()

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)
	private.setDefaults()

	cfg := &Config{Public: public, Private: private}
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}
	return cfg
}

// Validate checks the struct tags of both halves of the config.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c.Public); err != nil {
		return fmt.Errorf("invalid public config: %w", err)
	}
	if err := validate.Struct(c.Private); err != nil {
		return fmt.Errorf("invalid private config: %w", err)
	}
	return c.Public.validateMediaGC()
}

// validateMediaGC keeps the collector from deleting a file whose upload
// request is still running.
func (p *Public) validateMediaGC() error {
	if p.Media.GCInterval <= 0 {
		return nil
	}
	if p.Http.ReadTimeout <= 0 || p.Http.WriteTimeout <= 0 {
		return fmt.Errorf("invalid public config: media.gc_interval needs bounded http read_timeout and write_timeout")
	}
	if request := p.Http.ReadTimeout + p.Http.WriteTimeout; p.Media.GCSafetyAge <= request {
		return fmt.Errorf("invalid public config: media.gc_safety_age (%s) must exceed http read_timeout + write_timeout (%s)",
			p.Media.GCSafetyAge, request)
	}
	return nil
}
