package vaders

import (
	"time"

	"github.com/urfave/cli"
)

const (
	HostFlag       = "vaders-host"
	UsernameFlag   = "vaders-username"
	PasswordFlag   = "vaders-password"
	SessionTTLFlag = "vaders-session-ttl"
	TimeoutFlag    = "vaders-timeout"
	UserAgentFlag  = "vaders-user-agent"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   HostFlag,
			Usage:  "provider API endpoint",
			Value:  "http://vapi.vaders.tv/",
			EnvVar: "VADERS_HOST",
		},
		cli.StringFlag{
			Name:   UsernameFlag,
			Usage:  "provider account username",
			EnvVar: "VADERS_USERNAME",
		},
		cli.StringFlag{
			Name:   PasswordFlag,
			Usage:  "provider account password",
			EnvVar: "VADERS_PASSWORD",
		},
		cli.DurationFlag{
			Name:   SessionTTLFlag,
			Usage:  "how long a successful login is trusted before re-validating (0 re-validates on every call)",
			Value:  15 * time.Minute,
			EnvVar: "VADERS_SESSION_TTL",
		},
	)
}

func RegisterClientFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.DurationFlag{
			Name:   TimeoutFlag,
			Usage:  "provider http client timeout",
			Value:  30 * time.Second,
			EnvVar: "VADERS_TIMEOUT",
		},
		cli.StringFlag{
			Name:   UserAgentFlag,
			Usage:  "user agent for provider http client",
			EnvVar: "VADERS_USER_AGENT",
		},
	)
}
