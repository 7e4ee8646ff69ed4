// Package autoload initializes the global logger from the LOG_* environment
// on import:
//
//	import _ "github.com/alfredlabs/alfred/pkg/logger/autoload"
package autoload

import (
	configx "github.com/alfredlabs/alfred/pkg/config"
	logx "github.com/alfredlabs/alfred/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
