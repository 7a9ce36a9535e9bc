package config

import "strings"

// Setting names read from the resolved settings.
const (
	RegistryNameKey      = "AZURE_CONTAINER_REGISTRY_NAME"
	ResourceGroupKey     = "AZURE_RESOURCE_GROUP"
	AppNameKey           = "AZURE_CONTAINER_APP_NAME"
	OpenAIEndpointKey    = "AZURE_OPENAI_ENDPOINT"
	SearchEndpointKey    = "AZURE_SEARCH_ENDPOINT"
	ChatModelKey         = "AZURE_OPENAI_CHAT_MODEL"
	SearchIndexKey       = "AZURE_SEARCH_INDEX"
	AppInsightsKey       = "APPLICATIONINSIGHTS_CONNECTION_STRING"
	ChatDeploymentEnvKey = "AZURE_OPENAI_CHAT_DEPLOYMENT"
)

const (
	DefaultChatModel   = "gpt-4o-mini"
	DefaultSearchIndex = "documents"

	ImageName         = "rag-chat-app"
	ImageTag          = "latest"
	DefaultDockerfile = "Dockerfile"
)

// Config is the typed deployment configuration. It is a value type; callers
// receive copies and never mutate shared state.
type Config struct {
	RegistryName   string
	ResourceGroup  string
	AppName        string
	OpenAIEndpoint string
	SearchEndpoint string

	ChatModel   string
	SearchIndex string

	AppInsightsConnectionString string

	RootDir      string
	Environment  string
	BuildContext string
	Dockerfile   string
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	RootDir      string
	Environment  string
	BuildContext *string
	Dockerfile   *string
}

type requiredSetting struct {
	name  string
	value func(Config) string
}

// requiredSettings is ordered; validation reports the first failure only.
var requiredSettings = []requiredSetting{
	{RegistryNameKey, func(c Config) string { return c.RegistryName }},
	{ResourceGroupKey, func(c Config) string { return c.ResourceGroup }},
	{AppNameKey, func(c Config) string { return c.AppName }},
	{OpenAIEndpointKey, func(c Config) string { return c.OpenAIEndpoint }},
	{SearchEndpointKey, func(c Config) string { return c.SearchEndpoint }},
}

// RequiredSettings returns the required setting names in validation order.
func RequiredSettings() []string {
	names := make([]string, 0, len(requiredSettings))
	for _, rs := range requiredSettings {
		names = append(names, rs.name)
	}
	return names
}

// Load builds a Config from resolved settings with CLI overrides applied on top.
// Defaults for optional settings are not applied here; see WithDefaults.
func Load(settings Settings, overrides *CLIOverrides) Config {
	cfg := Config{
		RegistryName:                settings.Get(RegistryNameKey),
		ResourceGroup:               settings.Get(ResourceGroupKey),
		AppName:                     settings.Get(AppNameKey),
		OpenAIEndpoint:              settings.Get(OpenAIEndpointKey),
		SearchEndpoint:              settings.Get(SearchEndpointKey),
		ChatModel:                   settings.Get(ChatModelKey),
		SearchIndex:                 settings.Get(SearchIndexKey),
		AppInsightsConnectionString: settings.Get(AppInsightsKey),
		RootDir:                     ".",
		Dockerfile:                  DefaultDockerfile,
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if cfg.BuildContext == "" {
		cfg.BuildContext = cfg.RootDir
	}

	return cfg
}

func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if root := strings.TrimSpace(overrides.RootDir); root != "" {
		cfg.RootDir = root
	}

	cfg.Environment = strings.TrimSpace(overrides.Environment)

	if overrides.BuildContext != nil && *overrides.BuildContext != "" {
		cfg.BuildContext = *overrides.BuildContext
	}

	if overrides.Dockerfile != nil && *overrides.Dockerfile != "" {
		cfg.Dockerfile = *overrides.Dockerfile
	}
}

// Validate checks the required settings in order and returns a
// *MissingSettingError naming the first one that is absent or empty.
func (c Config) Validate() error {
	for _, rs := range requiredSettings {
		if strings.TrimSpace(rs.value(c)) == "" {
			return &MissingSettingError{Name: rs.name}
		}
	}
	return nil
}

// Warnings lists non-fatal configuration gaps.
func (c Config) Warnings() []string {
	var warnings []string
	if strings.TrimSpace(c.AppInsightsConnectionString) == "" {
		warnings = append(warnings, AppInsightsKey+" is not set; telemetry will be disabled")
	}
	return warnings
}

// TelemetryEnabled reports whether a telemetry connection string is configured.
func (c Config) TelemetryEnabled() bool {
	return strings.TrimSpace(c.AppInsightsConnectionString) != ""
}

// WithDefaults returns a copy with optional settings filled from defaults.
func (c Config) WithDefaults() Config {
	if strings.TrimSpace(c.ChatModel) == "" {
		c.ChatModel = DefaultChatModel
	}
	if strings.TrimSpace(c.SearchIndex) == "" {
		c.SearchIndex = DefaultSearchIndex
	}
	return c
}

// ImageRef returns the unqualified image reference name:tag.
func (c Config) ImageRef() string {
	return ImageName + ":" + ImageTag
}
