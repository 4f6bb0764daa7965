package shared

import (
	"os"
	"strings"
)

// colorsDisabled and unicodeDisabled follow NO_COLOR and TERM=dumb.
//
//nolint:gochecknoglobals // Read once from the environment at start-up
var (
	colorsDisabled  = os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb"
	unicodeDisabled = os.Getenv("TERM") == "dumb" || strings.EqualFold(os.Getenv("FILE_FINDER_ASCII"), "1")
)
