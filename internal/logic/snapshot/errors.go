package snapshot

import "errors"

var (
	ErrCollect       = errors.New("collect inventory")
	ErrParseQuantity = errors.New("parse quantity")
	ErrNotReady      = errors.New("snapshot service is not ready")
	ErrLastRunFailed = errors.New("last snapshot failed")
	ErrNoNamespaces  = errors.New("no snapshot namespaces configured")
)
