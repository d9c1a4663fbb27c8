// SPDX-License-Identifier: GPL-3.0-or-later

package markdown

import (
	"os"

	"github.com/mattn/go-isatty"
)

// MaybeRender renders content as markdown when stdout is attached to
// a terminal, and returns it unmodified otherwise (e.g. when help
// output is piped to a file or another process, where ANSI styling
// would just be noise).
func MaybeRender(content string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return content
	}
	return TryRender(content)
}
