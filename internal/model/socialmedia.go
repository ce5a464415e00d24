package model

import (
	"slices"
	"strings"
)

// Platform identifies a social media platform a division can link.
type Platform string

const (
	PlatformGitHub    Platform = "github"
	PlatformDiscord   Platform = "discord"
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformTwitter   Platform = "twitter"
	PlatformFacebook  Platform = "facebook"
)

// platformDomains whitelists extra root domains per platform beyond the
// implicit "<platform>.com".
var platformDomains = map[Platform][]string{
	PlatformGitHub:    {"github.dev"},
	PlatformDiscord:   {"discord.gg", "discordapp.com"},
	PlatformYouTube:   {"youtu.be", "youtube.co"},
	PlatformInstagram: {"instagr.am"},
	PlatformTikTok:    {},
	PlatformTwitter:   {},
	PlatformFacebook:  {"meta.com"},
}

var platformOrder = []Platform{
	PlatformGitHub,
	PlatformDiscord,
	PlatformYouTube,
	PlatformInstagram,
	PlatformTikTok,
	PlatformTwitter,
	PlatformFacebook,
}

// Platforms returns every known platform in a stable order.
func Platforms() []Platform {
	platforms := make([]Platform, len(platformOrder))
	copy(platforms, platformOrder)
	return platforms
}

// IsValid reports whether the platform is known.
func (p Platform) IsValid() bool {
	_, ok := platformDomains[p]
	return ok
}

// Domains returns the platform's whitelisted root domains, always
// including "<platform>.com".
func (p Platform) Domains() []string {
	extra := platformDomains[p]
	domains := make([]string, 0, len(extra)+1)
	domains = append(domains, extra...)
	return append(domains, string(p)+".com")
}

// IsValidLink reports whether the link's root domain is on the
// platform's whitelist. The scheme is stripped when it is exactly
// "https://" or "http://", the host runs to the first slash, and the
// root domain is the last two dot-separated labels. A host with fewer
// than two labels never matches.
func (p Platform) IsValidLink(link string) bool {
	if link == "" {
		return false
	}

	trimmed := link
	if rest, ok := strings.CutPrefix(trimmed, "https://"); ok {
		trimmed = rest
	} else if rest, ok := strings.CutPrefix(trimmed, "http://"); ok {
		trimmed = rest
	}

	host, _, _ := strings.Cut(trimmed, "/")
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return false
	}

	rootDomain := labels[len(labels)-2] + "." + labels[len(labels)-1]
	return slices.Contains(p.Domains(), rootDomain)
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return string(p)
}
