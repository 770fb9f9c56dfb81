package version

const (
	AppName     = "Guildkeeper"
	AppVersion  = "0.3.0"
	Description = "Per-guild moderation and content posting bot for Discord"
)
