package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mylxsw/asteria/formatter"
	"github.com/mylxsw/asteria/level"
	"github.com/mylxsw/asteria/log"
	"github.com/mylxsw/asteria/writer"
	"github.com/mylxsw/glacier/infra"
	"github.com/mylxsw/glacier/starter/app"
	"github.com/mylxsw/kimi-gateway/api"
	"github.com/mylxsw/kimi-gateway/config"
	"github.com/mylxsw/kimi-gateway/pkg/chat"
	"github.com/mylxsw/kimi-gateway/pkg/misc"
	"github.com/mylxsw/kimi-gateway/pkg/proxy"
	"github.com/mylxsw/kimi-gateway/pkg/telemetry"
)

var (
	Version   string
	GitCommit string
)

func main() {
	// turn off framework WARN log
	infra.WARN = false

	telemetry.Version = misc.Default(Version, telemetry.DefaultVersion)

	ins := app.Create(fmt.Sprintf("%s(%s)", Version, GitCommit), 3).WithYAMLFlag("conf")

	// load configurations
	config.Register(ins)

	// log configuration
	ins.Init(func(f infra.FlagContext) error {
		if !f.Bool("log-color") {
			log.All().LogFormatter(formatter.NewJSONFormatter())
		}

		if f.String("log-path") != "" {
			log.All().LogWriter(writer.NewDefaultRotatingFileWriter(context.TODO(), func(le level.Level, module string) string {
				return filepath.Join(f.String("log-path"), fmt.Sprintf("%s.%s.log", le.GetLevelName(), time.Now().Format("20060102")))
			}))
		}

		return nil
	})

	ins.OnServerReady(func(f infra.FlagContext) {
		log.Infof("gateway started and listening on %s", f.String("listen"))
	})

	ins.Provider(
		proxy.Provider{},
		telemetry.Provider{},
		chat.Provider{},
		api.Provider{},
	)

	app.MustRun(ins)
}
