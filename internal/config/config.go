package config

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/vdsl/internal/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultDocuments is the default documents directory.
	DefaultDocuments = "components"

	// DefaultPort is the default preview server port.
	DefaultPort = 7070

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultIndent is the default indentation for pretty output.
	DefaultIndent = "  "

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "vdsl"

	// DefaultTracer is the default OpenTelemetry tracer name.
	DefaultTracer = "vdsl"
)

// FileNames are the configuration file names looked up by Load, in order.
var FileNames = []string{"vdsl.yaml", "vdsl.yml", "vdsl.json"}

// ErrNotFound is returned by Load when no configuration file exists.
var ErrNotFound = errors.New("E122")

// Config represents the project configuration.
type Config struct {
	// Documents is the directory holding element documents.
	Documents string `json:"documents,omitempty" yaml:"documents,omitempty"`

	// Strict makes renders fail on elements waiting on resources.
	Strict bool `json:"strict,omitempty" yaml:"strict,omitempty"`

	// Render contains HTML output configuration.
	Render RenderConfig `json:"render,omitempty" yaml:"render,omitempty"`

	// Preview contains preview server configuration.
	Preview PreviewConfig `json:"preview,omitempty" yaml:"preview,omitempty"`

	// Telemetry contains metrics and tracing configuration.
	Telemetry TelemetryConfig `json:"telemetry,omitempty" yaml:"telemetry,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RenderConfig contains HTML output settings.
type RenderConfig struct {
	// Pretty enables indented output.
	Pretty bool `json:"pretty,omitempty" yaml:"pretty,omitempty"`

	// Indent is the indentation unit for pretty output.
	Indent string `json:"indent,omitempty" yaml:"indent,omitempty"`

	// MarkWaiting marks elements waiting on resources in the output.
	MarkWaiting bool `json:"markWaiting,omitempty" yaml:"markWaiting,omitempty"`
}

// PreviewConfig contains preview server settings.
type PreviewConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Title is the page title prefix.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// TelemetryConfig contains metrics and tracing settings.
type TelemetryConfig struct {
	// Namespace is the Prometheus metrics namespace.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`

	// Tracer is the OpenTelemetry tracer name.
	Tracer string `json:"tracer,omitempty" yaml:"tracer,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory, trying each of
// FileNames in turn. It returns ErrNotFound if none exists.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E122").
		WithDetail("No " + strings.Join(FileNames, ", ") + " found in " + dir).
		WithSuggestion("Create vdsl.yaml, or omit --config to use the defaults")
}

// LoadOrDefault is Load, falling back to defaults when no file exists.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if errors.Is(err, ErrNotFound) {
		return New(), nil
	}
	return cfg, err
}

// LoadFile reads configuration from the specified file path. Files ending
// in .json are decoded as JSON, everything else as YAML. Unknown fields are
// rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E122").WithDetail("No config file at " + path)
		}
		return nil, errors.New("E121").Wrap(err)
	}

	cfg := &Config{}
	if err := decode(path, data, cfg); err != nil {
		return nil, errors.New("E121").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check the file for typos in field names and indentation")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if isJSON(path) {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, as JSON for .json
// files and YAML otherwise.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(c, "", "  ")
		// Add newline at end of file
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
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
	if c.Documents == "" {
		c.Documents = DefaultDocuments
	}
	if c.Render.Indent == "" {
		c.Render.Indent = DefaultIndent
	}
	if c.Preview.Host == "" {
		c.Preview.Host = DefaultHost
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPort
	}
	if c.Preview.Title == "" {
		c.Preview.Title = "vdsl preview"
	}
	if c.Telemetry.Namespace == "" {
		c.Telemetry.Namespace = DefaultNamespace
	}
	if c.Telemetry.Tracer == "" {
		c.Telemetry.Tracer = DefaultTracer
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return errors.New("E120").
			WithDetail("preview.port must be between 0 and 65535")
	}
	if strings.TrimSpace(c.Render.Indent) != "" {
		return errors.New("E120").
			WithDetailf("render.indent must be whitespace, got %q", c.Render.Indent)
	}
	if !validMetricName(c.Telemetry.Namespace) {
		return errors.New("E120").
			WithDetailf("telemetry.namespace %q is not a valid metric name", c.Telemetry.Namespace).
			WithSuggestion("Use letters, digits and underscores, not starting with a digit")
	}
	return nil
}

func validMetricName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Addr returns the listen address of the preview server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Preview.Host, strconv.Itoa(c.Preview.Port))
}

// URL returns the base URL of the preview server.
func (c *Config) URL() string {
	return "http://" + c.Addr()
}

// DocumentsPath returns the documents directory, resolved against the
// config file's directory when relative.
func (c *Config) DocumentsPath() string {
	if filepath.IsAbs(c.Documents) {
		return c.Documents
	}
	return filepath.Join(c.Dir(), c.Documents)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the directory holding a
// config file.
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
			return "", errors.New("E122").
				WithDetail("No config file found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
