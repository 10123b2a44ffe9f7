package constants

const (
	Version        = `0.1.0`
	ConfigFile     = `cfg`
	ConfigFileType = `yaml`
	ConfigDir      = `/.mnemo/`
	SessionFile    = `session`
	LogFile        = `mnemo.log`
)

const (
	DefaultBaseURL  = "http://localhost:8000/api/v1"
	DefaultTokenURL = "http://localhost:3000/api/auth/token"

	DefaultTopK          = 5
	DefaultMinSimilarity = 0.3
	DefaultPageSize      = 20
	DefaultSortBy        = "updated_at"
	DefaultSortOrder     = "desc"
)
