package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/ui/theme"
)

// BannerArt is the block-letter KANAZ title.
const BannerArt = ` ██╗  ██╗ █████╗ ███╗   ██╗ █████╗ ███████╗
 ██║ ██╔╝██╔══██╗████╗  ██║██╔══██╗╚══███╔╝
 █████╔╝ ███████║██╔██╗ ██║███████║  ███╔╝
 ██╔═██╗ ██╔══██║██║╚██╗██║██╔══██║ ███╔╝
 ██║  ██╗██║  ██║██║ ╚████║██║  ██║███████╗
 ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝╚══════╝`

// BannerCompact is used when the terminal is too narrow for BannerArt.
const BannerCompact = "K · A · N · A · Z"

// bannerMinWidth is the narrowest width that fits BannerArt.
const bannerMinWidth = 46

// RenderBanner returns the KANAZ banner styled in the primary color.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(BannerCompact)
	}
	return style.Render(BannerArt)
}
