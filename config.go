package sitecms

import "github.com/goliatone/go-sitecms/internal/runtimeconfig"

var (
	ErrAIProviderUnknown       = runtimeconfig.ErrAIProviderUnknown
	ErrAIImageSizeInvalid      = runtimeconfig.ErrAIImageSizeInvalid
	ErrAutomationRequiresAI    = runtimeconfig.ErrAutomationRequiresAI
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrHTTPAddrRequired        = runtimeconfig.ErrHTTPAddrRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	StorageConfig        = runtimeconfig.StorageConfig
	CacheConfig          = runtimeconfig.CacheConfig
	Features             = runtimeconfig.Features
	LoggingConfig        = runtimeconfig.LoggingConfig
	AIConfig             = runtimeconfig.AIConfig
	AutomationConfig     = runtimeconfig.AutomationConfig
	NotificationsConfig  = runtimeconfig.NotificationsConfig
	ContactConfig        = runtimeconfig.ContactConfig
	HTTPConfig           = runtimeconfig.HTTPConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML config file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
