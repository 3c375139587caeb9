package common

import (
	"github.com/ternarybob/banner"
)

// PrintBanner displays the application banner
func PrintBanner() {
	b := banner.New().SetStyle(banner.StyleDouble).SetWidth(60)
	b.PrintTopLine()
	b.PrintCenteredText("pdftables")
	b.PrintCenteredText("PDF tables to CSV")
	b.PrintSeparatorLine()
	b.PrintKeyValue("Version", GetVersion(), 10)
	b.PrintKeyValue("Commit", GetGitCommit(), 10)
	b.PrintBottomLine()
}
