package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissing is wrapped by Validate for every required secret left unset.
var ErrMissing = errors.New("missing required setting")

type Log struct {
	Level string `yaml:"level"`
}

type Quotes struct {
	BaseURL    string `yaml:"base_url"`
	Host       string `yaml:"host"`
	APIKey     string `yaml:"api_key"`
	TimeoutSec int    `yaml:"timeout_sec"`
	DelayMs    int    `yaml:"delay_ms"`
	// MaxPerMinute caps requests against the plan quota; zero disables it.
	MaxPerMinute int `yaml:"max_requests_per_minute"`
	Burst        int `yaml:"burst"`
}

type Mail struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Sender   string `yaml:"sender"`
	Receiver string `yaml:"receiver"`
	Password string `yaml:"password"`
	Subject  string `yaml:"subject"`
	TailRows int    `yaml:"tail_rows"`
}

type Output struct {
	CSVPath string `yaml:"csv_path"`
	Reload  bool   `yaml:"reload"`
}

type Store struct {
	SqlitePath string `yaml:"sqlite_path"`
}

type Config struct {
	Symbols []string `yaml:"symbols"`
	Log     Log      `yaml:"log"`
	Quotes  Quotes   `yaml:"quotes"`
	Mail    Mail     `yaml:"mail"`
	Output  Output   `yaml:"output"`
	Store   Store    `yaml:"store"`
}

// Credentials is the narrow view of configuration the collection workflow
// depends on. Secret storage stays behind it.
type Credentials interface {
	APIKey() string
	Sender() string
	Receiver() string
	MailPassword() string
	SymbolList() []string
}

func Default() Config {
	return Config{
		Symbols: []string{"TSLA", "MSFT", "SPOT", "UBER", "AAPL"},
		Log:     Log{Level: "info"},
		Quotes: Quotes{
			BaseURL:    "https://realstonks.p.rapidapi.com",
			Host:       "realstonks.p.rapidapi.com",
			TimeoutSec: 10,
			DelayMs:    1000,
		},
		Mail: Mail{
			Host:     "smtp.gmail.com",
			Port:     587,
			Subject:  "Stock Data",
			TailRows: 5,
		},
		Output: Output{CSVPath: "stocks.csv", Reload: true},
	}
}

// Load reads YAML config from path. If path is empty or the file does not
// exist, it returns defaults. Environment variables override secrets and a
// few operational fields.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("RAPIDAPI_KEY"); v != "" {
		cfg.Quotes.APIKey = v
	}
	if v := os.Getenv("RAPIDAPI_HOST"); v != "" {
		cfg.Quotes.Host = v
	}
	if v := os.Getenv("QUOTES_BASE_URL"); v != "" {
		cfg.Quotes.BaseURL = v
	}
	if v := os.Getenv("MAIL_SENDER"); v != "" {
		cfg.Mail.Sender = v
	}
	if v := os.Getenv("MAIL_RECEIVER"); v != "" {
		cfg.Mail.Receiver = v
	}
	if v := os.Getenv("MAIL_PASSWORD"); v != "" {
		cfg.Mail.Password = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Mail.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		var p int
		if _, err := fmt.Sscanf(v, "%d", &p); err != nil || p <= 0 || p > 65535 {
			return fmt.Errorf("invalid SMTP_PORT: %q", v)
		}
		cfg.Mail.Port = p
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		cfg.Symbols = splitCSV(v)
	}
	if v := os.Getenv("OUTPUT_CSV"); v != "" {
		cfg.Output.CSVPath = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Store.SqlitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// Validate reports every required setting that is empty.
func (c *Config) Validate() error {
	errs := c.fetchErrors()
	if c.Mail.Sender == "" {
		errs = append(errs, fmt.Errorf("%w: mail.sender (MAIL_SENDER)", ErrMissing))
	}
	if c.Mail.Receiver == "" {
		errs = append(errs, fmt.Errorf("%w: mail.receiver (MAIL_RECEIVER)", ErrMissing))
	}
	if c.Mail.Password == "" {
		errs = append(errs, fmt.Errorf("%w: mail.password (MAIL_PASSWORD)", ErrMissing))
	}
	return errors.Join(errs...)
}

// ValidateDryRun checks only what a run that logs instead of mailing needs.
func (c *Config) ValidateDryRun() error {
	return errors.Join(c.fetchErrors()...)
}

func (c *Config) fetchErrors() []error {
	var errs []error
	if len(c.Symbols) == 0 {
		errs = append(errs, fmt.Errorf("%w: symbols", ErrMissing))
	}
	if c.Quotes.APIKey == "" {
		errs = append(errs, fmt.Errorf("%w: quotes.api_key (RAPIDAPI_KEY)", ErrMissing))
	}
	if c.Output.CSVPath == "" {
		errs = append(errs, fmt.Errorf("%w: output.csv_path", ErrMissing))
	}
	return errs
}

func (c *Config) APIKey() string       { return c.Quotes.APIKey }
func (c *Config) Sender() string       { return c.Mail.Sender }
func (c *Config) Receiver() string     { return c.Mail.Receiver }
func (c *Config) MailPassword() string { return c.Mail.Password }

// SymbolList returns a copy of the configured symbols.
func (c *Config) SymbolList() []string {
	return append([]string(nil), c.Symbols...)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
