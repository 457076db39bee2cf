// Package logging provides env-gated structured logging for beastx-cfg.
//
// The CLI is silent by default: unless BEASTX_LOG_LEVEL is set, every log
// call goes to a nop logger and user-facing output is limited to what the
// commands print themselves. Setting the variable to debug, info, warn, or
// error enables console-encoded zap output on stdout, including hex dumps
// of outgoing reports at debug level.
package logging
