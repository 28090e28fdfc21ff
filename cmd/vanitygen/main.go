package main

import (
	"fmt"
	"os"
	"path/filepath"

	"VanityGen/internal/cli"
	"VanityGen/pkg/appcfg"
	"VanityGen/pkg/logx"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "getwd: %v\n", err)
		os.Exit(2)
	}

	appConf, err := appcfg.Load(filepath.Join(cwd, "configs", "app.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load app config: %v (using defaults)\n", err)
		appConf = appcfg.Default()
	}

	if err := logx.Init(logx.Config{
		Level:                appConf.LogLevel,
		FilePath:             appConf.LogFile,
		HideSecretsInConsole: appConf.HideSecretsInConsole,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "log init: %v\n", err)
		os.Exit(1)
	}

	logx.S().Infow("vanitygen started",
		"cwd", cwd,
		"log_level", appConf.LogLevel,
		"network", appConf.Network,
		"hide_secrets_in_console", appConf.HideSecretsInConsole,
	)

	code := cli.NewRunner(appConf).Run(os.Args[1:])
	logx.Close()
	os.Exit(code)
}
