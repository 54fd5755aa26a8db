package main

import (
	"context"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	mh "github.com/vaderstv/stremio-addon/handlers/metrics"
	sh "github.com/vaderstv/stremio-addon/handlers/stremio"
	"github.com/vaderstv/stremio-addon/services/common"
	"github.com/vaderstv/stremio-addon/services/store"
	"github.com/vaderstv/stremio-addon/services/stremio"
	"github.com/vaderstv/stremio-addon/services/vaders"
	w "github.com/vaderstv/stremio-addon/services/web"
)

func makeServeCMD() cli.Command {
	serveCMD := cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serves web server",
		Action:  serve,
	}
	configureServe(&serveCMD)
	return serveCMD
}

func configureServe(c *cli.Command) {
	c.Flags = cs.RegisterProbeFlags(c.Flags)
	c.Flags = cs.RegisterPprofFlags(c.Flags)
	c.Flags = cs.RegisterRedisClientFlags(c.Flags)
	c.Flags = w.RegisterFlags(c.Flags)
	c.Flags = common.RegisterFlags(c.Flags)
	c.Flags = store.RegisterFlags(c.Flags)
	c.Flags = vaders.RegisterFlags(c.Flags)
	c.Flags = vaders.RegisterClientFlags(c.Flags)
	c.Flags = stremio.RegisterFlags(c.Flags)
}

func serve(c *cli.Context) error {
	var servers []cs.Servable
	// Setting Probe
	probe := cs.NewProbe(c)
	if probe != nil {
		servers = append(servers, probe)
		defer probe.Close()
	}

	// Setting Pprof
	pprof := cs.NewPprof(c)
	if pprof != nil {
		servers = append(servers, pprof)
		defer pprof.Close()
	}

	// Setting Gin
	r := gin.Default()
	r.RedirectTrailingSlash = false

	// Setting Web
	web := w.New(c, r)
	servers = append(servers, web)
	defer web.Close()

	// Setting Store
	var st *store.Store
	if c.Bool(store.UseRedisFlag) {
		// Setting Redis
		redis := cs.NewRedisClient(c)
		defer redis.Close()
		st = store.New(redis)
	} else {
		st = store.New(nil)
	}

	// Setting Vaders Client
	cl := vaders.NewClient(c)

	// Setting Vaders Api
	api := vaders.New(
		c.String(vaders.HostFlag),
		c.String(vaders.UsernameFlag),
		c.String(vaders.PasswordFlag),
		cl,
	)

	// Setting Vaders Session
	session := vaders.NewSession(api, st, c.Duration(vaders.SessionTTLFlag))

	// Setting Stremio Builder
	b := stremio.NewBuilder(c, api, session, st)

	// Setting Stremio Handler
	sh.RegisterHandler(c, r, b)

	// Setting Metrics Handler
	mh.RegisterHandler(r)

	// Warming catalogs
	b.Warm(context.Background(), 0)

	log.Infof("addon manifest at %v/manifest.json", c.String(common.DomainFlag))

	// Setting Serve
	serve := cs.NewServe(servers...)

	// And SERVE!
	err := serve.Serve()
	if err != nil {
		log.WithError(err).Error("got server error")
	}
	return err
}
