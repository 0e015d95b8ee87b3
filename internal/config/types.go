package config

import "time"

// ContactMode selects how contact submissions are processed.
type ContactMode string

const (
	ContactSimulated ContactMode = "simulated"
	ContactLive      ContactMode = "live"
)

// ImageSource selects where the preload gate reads critical images from.
type ImageSource string

const (
	SourceFile ImageSource = "file"
	SourceHTTP ImageSource = "http"
	SourceS3   ImageSource = "s3"
)

// Config is the top-level server configuration, corresponding to studio.yml.
type Config struct {
	Server    ServerConfig    `yaml:"server" koanf:"server"`
	Database  DatabaseConfig  `yaml:"database" koanf:"database"`
	SMTP      SMTPConfig      `yaml:"smtp" koanf:"smtp"`
	Storage   StorageConfig   `yaml:"storage" koanf:"storage"`
	Assets    AssetsConfig    `yaml:"assets" koanf:"assets"`
	Contact   ContactConfig   `yaml:"contact" koanf:"contact"`
	Carousels CarouselsConfig `yaml:"carousels" koanf:"carousels"`
	Sessions  SessionsConfig  `yaml:"sessions" koanf:"sessions"`
	Log       LogConfig       `yaml:"log" koanf:"log"`
	// CatalogFile overrides the embedded site catalog when set.
	CatalogFile string `yaml:"catalog_file" koanf:"catalog_file"`
}

type ServerConfig struct {
	Port         string `yaml:"port" koanf:"port"`
	AllowOrigins string `yaml:"allow_origins" koanf:"allow_origins"`
	// TrustProxy makes client IPs come from X-Forwarded-For.
	TrustProxy bool `yaml:"trust_proxy" koanf:"trust_proxy"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" koanf:"driver"`
	DSN    string `yaml:"dsn" koanf:"dsn"`
}

type SMTPConfig struct {
	Host      string `yaml:"host" koanf:"host"`
	Port      string `yaml:"port" koanf:"port"`
	User      string `yaml:"user" koanf:"user"`
	Password  string `yaml:"password" koanf:"password"`
	FromName  string `yaml:"from_name" koanf:"from_name"`
	FromEmail string `yaml:"from_email" koanf:"from_email"`
	// NotifyTo receives a copy of every contact submission.
	NotifyTo string `yaml:"notify_to" koanf:"notify_to"`
}

func (s SMTPConfig) Enabled() bool { return s.Host != "" && s.NotifyTo != "" }

type StorageConfig struct {
	Bucket string `yaml:"bucket" koanf:"bucket"`
	Region string `yaml:"region" koanf:"region"`
	Prefix string `yaml:"prefix" koanf:"prefix"`
}

type AssetsConfig struct {
	Dir            string        `yaml:"dir" koanf:"dir"`
	Source         ImageSource   `yaml:"source" koanf:"source"`
	BaseURL        string        `yaml:"base_url" koanf:"base_url"`
	ThumbnailWidth int           `yaml:"thumbnail_width" koanf:"thumbnail_width"`
	Concurrency    int           `yaml:"concurrency" koanf:"concurrency"`
	LoadTimeout    time.Duration `yaml:"load_timeout" koanf:"load_timeout"`
}

type ContactConfig struct {
	Mode           ContactMode   `yaml:"mode" koanf:"mode"`
	SimulatedDelay time.Duration `yaml:"simulated_delay" koanf:"simulated_delay"`
	RateWindow     time.Duration `yaml:"rate_window" koanf:"rate_window"`
	RateLimit      int           `yaml:"rate_limit" koanf:"rate_limit"`
}

// CarouselConfig holds the timings of one slideshow widget.
type CarouselConfig struct {
	Interval    time.Duration `yaml:"interval" koanf:"interval"`
	Transition  time.Duration `yaml:"transition" koanf:"transition"`
	ResumeDelay time.Duration `yaml:"resume_delay" koanf:"resume_delay"`
	Autoplay    bool          `yaml:"autoplay" koanf:"autoplay"`
}

type CarouselsConfig struct {
	Hero      CarouselConfig `yaml:"hero" koanf:"hero"`
	Filmstrip CarouselConfig `yaml:"filmstrip" koanf:"filmstrip"`
	Roll      CarouselConfig `yaml:"roll" koanf:"roll"`
	Services  CarouselConfig `yaml:"services" koanf:"services"`
}

type SessionsConfig struct {
	TTL           time.Duration `yaml:"ttl" koanf:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval" koanf:"sweep_interval"`
	// ViewportWidth/Height enable lightbox pan clamping when both are set.
	ViewportWidth  float64 `yaml:"viewport_width" koanf:"viewport_width"`
	ViewportHeight float64 `yaml:"viewport_height" koanf:"viewport_height"`
}

type LogConfig struct {
	Level       string `yaml:"level" koanf:"level"`
	Development bool   `yaml:"development" koanf:"development"`
}
