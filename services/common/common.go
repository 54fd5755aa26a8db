package common

import (
	"github.com/urfave/cli"
)

var (
	DomainFlag = "domain"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   DomainFlag,
			Usage:  "public domain the addon is served from",
			Value:  "http://localhost:8080",
			EnvVar: "DOMAIN",
		},
	)
}
