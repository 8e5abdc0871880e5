package internal

import (
	"runtime/debug"
	"strings"
)

const (
	_moduleName     = "github.com/luizaranda/go-users"
	_unknownVersion = "v0.0.0-unknown"
)

// Version is the build version of this module as seen by the importing
// binary. When the module is the main module (tests, usersctl) the version
// recorded by the toolchain is used instead.
var Version = func() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return _unknownVersion
	}

	if bi.Main.Path == _moduleName && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}

	for _, dep := range bi.Deps {
		if strings.EqualFold(dep.Path, _moduleName) {
			return dep.Version
		}
	}

	return _unknownVersion
}()

// UserAgent is the default User-Agent sent on outgoing requests.
func UserAgent() string {
	return "users-go/" + Version
}
