package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/isoview/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "isoview.json"

	// DefaultPort is the default serve port.
	DefaultPort = 3000

	// DefaultHost is the default serve host.
	DefaultHost = "localhost"

	// DefaultOutput is the default export directory.
	DefaultOutput = "dist"

	// DefaultManifest is the default state manifest file.
	DefaultManifest = "states.yaml"

	// DefaultPlaceholder is the default placeholder tag or attribute.
	DefaultPlaceholder = "ui-view"

	// DefaultLang is the default document language.
	DefaultLang = "en"

	// DefaultConcurrency is the default number of parallel export renders.
	DefaultConcurrency = 4
)

// Config represents the complete isoview.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Placeholder is the tag or attribute name marking child views.
	Placeholder string `json:"placeholder,omitempty"`

	// Manifest is the path to the YAML state manifest.
	Manifest string `json:"manifest,omitempty"`

	// Document configures the HTML shell around rendered states.
	Document DocumentConfig `json:"document,omitempty"`

	// Serve contains HTTP server configuration.
	Serve ServeConfig `json:"serve,omitempty"`

	// Export contains static export configuration.
	Export ExportConfig `json:"export,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// DocumentConfig describes the page shell.
type DocumentConfig struct {
	// Title is the document title.
	Title string `json:"title,omitempty"`

	// Lang is the html lang attribute.
	Lang string `json:"lang,omitempty"`

	// Stylesheets are linked before collected state CSS.
	Stylesheets []string `json:"stylesheets,omitempty"`

	// Scripts are loaded at the end of the body.
	Scripts []string `json:"scripts,omitempty"`

	// Assets is an optional JSON manifest mapping stylesheet and script
	// names to fingerprinted names.
	Assets string `json:"assets,omitempty"`

	// AssetPrefix is the URL prefix for stylesheets and scripts.
	AssetPrefix string `json:"assetPrefix,omitempty"`
}

// ServeConfig contains HTTP server settings.
type ServeConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Metrics exposes Prometheus metrics at /metrics.
	Metrics bool `json:"metrics,omitempty"`
}

// ExportConfig contains static export settings.
type ExportConfig struct {
	// Output is the output directory.
	Output string `json:"output,omitempty"`

	// Concurrency bounds parallel renders.
	Concurrency int `json:"concurrency,omitempty"`

	// S3 uploads the export to a bucket instead of Output when Bucket is set.
	S3 S3Config `json:"s3,omitempty"`
}

// S3Config names an upload destination.
type S3Config struct {
	Bucket string `json:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Region string `json:"region,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from the specified directory.
// It looks for isoview.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E121").
				WithDetail("No isoview.json found in " + filepath.Dir(path))
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse isoview.json: " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Placeholder == "" {
		c.Placeholder = DefaultPlaceholder
	}
	if c.Manifest == "" {
		c.Manifest = DefaultManifest
	}

	if c.Document.Title == "" {
		c.Document.Title = c.Name
	}
	if c.Document.Lang == "" {
		c.Document.Lang = DefaultLang
	}

	if c.Serve.Host == "" {
		c.Serve.Host = DefaultHost
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = DefaultPort
	}

	if c.Export.Output == "" {
		c.Export.Output = DefaultOutput
	}
	if c.Export.Concurrency == 0 {
		c.Export.Concurrency = DefaultConcurrency
	}
	c.Export.S3.Prefix = strings.Trim(c.Export.S3.Prefix, "/")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return errors.New("E122").
			WithDetail("Port must be between 0 and 65535")
	}
	if c.Export.Concurrency < 0 {
		return errors.New("E120").
			WithDetail("export.concurrency must not be negative")
	}
	if strings.ContainsAny(c.Placeholder, " \t\n<>\"'=") {
		return errors.New("E120").
			WithDetailf("placeholder %q is not a valid tag or attribute name", c.Placeholder)
	}
	return nil
}

// ServeAddress returns the listen address for the HTTP server.
func (c *Config) ServeAddress() string {
	return c.Serve.Host + ":" + strconv.Itoa(c.Serve.Port)
}

// ManifestPath returns the absolute path to the state manifest.
func (c *Config) ManifestPath() string {
	return c.resolve(c.Manifest)
}

// OutputPath returns the absolute path to the export directory.
func (c *Config) OutputPath() string {
	return c.resolve(c.Export.Output)
}

// AssetsPath returns the absolute path to the asset manifest, or "" when
// none is configured.
func (c *Config) AssetsPath() string {
	if c.Document.Assets == "" {
		return ""
	}
	return c.resolve(c.Document.Assets)
}

// UseS3 reports whether exports upload to S3.
func (c *Config) UseS3() bool {
	return c.Export.S3.Bucket != ""
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing isoview.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No isoview.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
