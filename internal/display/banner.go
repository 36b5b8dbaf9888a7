package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// RenderBanner centres the startup art for the terminal the process
// is attached to. Purely decorative; it never reaches the speech
// backend.
func RenderBanner() string {
	lines := strings.Split(strings.TrimRight(bannerRaw, "\n"), "\n")
	if len(lines) == 0 {
		return ""
	}

	widest := 0
	for _, l := range lines {
		if len(l) > widest {
			widest = len(l)
		}
	}

	indent := ""
	if w := termWidth(); w > widest {
		indent = strings.Repeat(" ", (w-widest)/2)
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(indent)
		b.WriteString(BannerStyle.Render(l))
		b.WriteByte('\n')
	}
	return b.String()
}

// termWidth queries the terminal, falling back to 80 columns when the
// size is unavailable (e.g. output is a pipe).
func termWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
