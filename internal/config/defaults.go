package config

import "time"

// DefaultConfigFile is read from the working directory when no path is given.
const DefaultConfigFile = "studio.yml"

// DefaultConfig returns a Config suitable for local development: sqlite,
// simulated contact submissions and images from ./public.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			AllowOrigins: "http://localhost:3000",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "data/studio.db",
		},
		SMTP: SMTPConfig{
			Port:     "587",
			FromName: "Lumen Studio",
		},
		Storage: StorageConfig{
			Region: "us-east-1",
			Prefix: "images/",
		},
		Assets: AssetsConfig{
			Dir:            "public",
			Source:         SourceFile,
			ThumbnailWidth: 480,
			Concurrency:    4,
			LoadTimeout:    10 * time.Second,
		},
		Contact: ContactConfig{
			Mode:           ContactSimulated,
			SimulatedDelay: time.Second,
			RateWindow:     time.Minute,
			RateLimit:      5,
		},
		Carousels: CarouselsConfig{
			Hero: CarouselConfig{
				Interval:    5 * time.Second,
				Transition:  700 * time.Millisecond,
				ResumeDelay: 8 * time.Second,
				Autoplay:    true,
			},
			Filmstrip: CarouselConfig{
				Interval:    3 * time.Second,
				Transition:  500 * time.Millisecond,
				ResumeDelay: 6 * time.Second,
				Autoplay:    true,
			},
			Roll: CarouselConfig{
				Interval:    4 * time.Second,
				Transition:  600 * time.Millisecond,
				ResumeDelay: 5 * time.Second,
				Autoplay:    true,
			},
			Services: CarouselConfig{
				Interval:    6 * time.Second,
				Transition:  300 * time.Millisecond,
				ResumeDelay: 7 * time.Second,
				Autoplay:    true,
			},
		},
		Sessions: SessionsConfig{
			TTL:           30 * time.Minute,
			SweepInterval: time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
