package config

// Config holds the server configuration. It is constructed once at
// startup and passed into the wiring; nothing reads ambient process state
// after that.
type Config struct {
	Server ServerConfig
	Paths  PathsConfig
	Auth   AuthConfig
	PDF    PDFConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string
	Port string
}

// PathsConfig holds the fixed filesystem roots.
type PathsConfig struct {
	TemplatesDir string
	OutputDir    string
	ConfigDir    string
	AssetsDir    string
}

// AuthConfig holds the Basic credential gate secrets. Both values are
// required; startup fails when either is missing.
type AuthConfig struct {
	Username string
	Password string
}

// PDFConfig holds PDF engine settings.
type PDFConfig struct {
	Engine          string
	ChromiumPath    string
	WKHTMLTOPDFPath string
	Headless        bool
	Args            []string
	TimeoutSeconds  int
	PageSize        string
	Scale           float64
	PrintBackground bool
	MarginTop       string
	MarginBottom    string
	MarginLeft      string
	MarginRight     string
}

// Defaults returns a Config with sensible defaults. Credentials have no
// default on purpose.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
		},
		Paths: PathsConfig{
			TemplatesDir: "./templates",
			OutputDir:    "./output",
			ConfigDir:    "./configs",
			AssetsDir:    "./templates",
		},
		PDF: PDFConfig{
			Engine:          "chromium",
			Headless:        true,
			TimeoutSeconds:  60,
			Scale:           1.0,
			PrintBackground: true,
		},
	}
}
