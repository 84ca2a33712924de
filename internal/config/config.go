// Package config provides application configuration loaded from an
// optional config file and QUOTE_* environment variables.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/diewo77/go-quotations/i18n"
	"github.com/diewo77/go-quotations/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Company  CompanyConfig  `mapstructure:"company"`
	Output   OutputConfig   `mapstructure:"output"`
	Document DocumentConfig `mapstructure:"document"`
	Form     FormConfig     `mapstructure:"form"`
	Log      LogConfig      `mapstructure:"log"`
}

// CompanyConfig is the issuer printed in the document header.
type CompanyConfig struct {
	Name         string   `mapstructure:"name" validate:"required"`
	Tagline      string   `mapstructure:"tagline"`
	AddressLines []string `mapstructure:"address_lines"`
	ContactLines []string `mapstructure:"contact_lines"`
}

// OutputConfig controls where documents are saved.
type OutputConfig struct {
	Dir        string `mapstructure:"dir" validate:"required"`
	FilePrefix string `mapstructure:"file_prefix" validate:"required,excludesall=/\\"`
}

// DocumentConfig holds page and label settings.
type DocumentConfig struct {
	Language     string  `mapstructure:"language" validate:"oneof=en fr"`
	Currency     string  `mapstructure:"currency"`
	MarginMM     float64 `mapstructure:"margin_mm" validate:"gt=0,lte=50"`
	LogoSizeMM   float64 `mapstructure:"logo_size_mm" validate:"gt=0,lte=60"`
	MaxLogoBytes int64   `mapstructure:"max_logo_bytes" validate:"gte=0"`
}

// FormConfig holds the defaults of a fresh form.
type FormConfig struct {
	DefaultRows  int    `mapstructure:"default_rows" validate:"gte=1,lte=200"`
	ValidityDays int    `mapstructure:"validity_days" validate:"gte=0"`
	Terms        string `mapstructure:"terms"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

// FormDefaults converts the form section for models.NewQuotationForm.
func (c *Config) FormDefaults() models.Defaults {
	return models.Defaults{
		Rows:         c.Form.DefaultRows,
		ValidityDays: c.Form.ValidityDays,
		Terms:        c.Form.Terms,
	}
}

// Validate checks the struct tags above.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("company.name", "Ajith Iron Works")
	v.SetDefault("company.tagline", "")
	v.SetDefault("company.address_lines", []string{
		"No, 167/4, Bogahalandhawatta, Brahakmanagama,",
		"Pannipitiya.10230",
	})
	v.SetDefault("company.contact_lines", []string{
		"Website: pending!...",
		"Phone: 0789926314",
		"Whatsapp: 0789926314",
	})
	v.SetDefault("output.dir", defaultOutputDir())
	v.SetDefault("output.file_prefix", "Ajith_Iron_Works_Quotation")
	v.SetDefault("document.language", systemLanguage())
	v.SetDefault("document.currency", "Rs")
	v.SetDefault("document.margin_mm", 25.4)
	v.SetDefault("document.logo_size_mm", 18)
	v.SetDefault("document.max_logo_bytes", 10<<20)
	v.SetDefault("form.default_rows", models.DefaultRowCount)
	v.SetDefault("form.validity_days", models.DefaultValidityDays)
	v.SetDefault("form.terms", models.DefaultTerms)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// systemLanguage picks the document language from the POSIX locale,
// falling back to English.
func systemLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return i18n.DetectLanguage(v)
		}
	}
	return i18n.DefaultLanguage
}

func defaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Documents"
	}
	return filepath.Join(home, "Documents")
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// Load reads configuration. An explicit file must exist; without one,
// quotegen.{yaml,json,toml} is looked up in the working directory and
// ~/.config/quotegen and silently skipped when absent. Environment
// variables (QUOTE_OUTPUT_DIR, QUOTE_DOCUMENT_LANGUAGE, ...) win over both.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("QUOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("quotegen")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "quotegen"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Output.Dir = ExpandHome(cfg.Output.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
