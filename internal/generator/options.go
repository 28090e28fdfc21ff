package generator

import (
	"VanityGen/pkg/appcfg"
)

type Options struct {
	App         *appcfg.Config
	QueriesPath string // configs/queries.yaml
	LogsBase    string // logs; empty keeps console logging only
	ShowSecrets bool   // log WIF and mnemonic of found keys
}
