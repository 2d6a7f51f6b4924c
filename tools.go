//go:build tools
// +build tools

package tools

// Tools are not imported by the bridge itself; this keeps them pinned in go.mod.

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/swaggo/swag/cmd/swag"
	_ "github.com/vektra/mockery/v2"
)
