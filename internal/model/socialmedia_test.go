package model

import "testing"

func TestIsValidLink_LinkScheme(t *testing.T) {
	t.Parallel()

	cases := []struct {
		platform Platform
		link     string
		want     bool
	}{
		{PlatformDiscord, "https://discord.com/invite/", true},
		{PlatformDiscord, "discord.gg/", true},
		{PlatformDiscord, "http://discordapp.com/invite/", true},
		{PlatformDiscord, "https://youtube.com", false},

		{PlatformYouTube, "https://youtu.be/", true},
		{PlatformYouTube, "http://youtube.co/", true},
		{PlatformYouTube, "discord.com/invite/", false},

		{PlatformGitHub, "github.com/", true},
		{PlatformGitHub, "http://instagra.com", false},

		{PlatformInstagram, "https://instagr.am/", true},
		{PlatformInstagram, "instagram.com/", true},
		{PlatformInstagram, "youtube.co", false},

		{PlatformTikTok, "https://tiktok.com/EE", true},
		{PlatformTikTok, "tiktok.com", true},
		{PlatformTikTok, "discord.gg", false},

		{PlatformTwitter, "https://twitter.com/", true},
		{PlatformTwitter, "twitter.com//", true},
		{PlatformTwitter, "github.com/ABCDEFG", false},

		{PlatformFacebook, "https://facebook.com/", true},
		{PlatformFacebook, "http://facebook.com", true},
		{PlatformFacebook, "instagram.com", false},
	}

	for _, tc := range cases {
		if got := tc.platform.IsValidLink(tc.link); got != tc.want {
			t.Errorf("%s.IsValidLink(%q) = %v, want %v", tc.platform, tc.link, got, tc.want)
		}
	}
}

func TestIsValidLink_SubdomainsMatchRootDomain(t *testing.T) {
	t.Parallel()

	if !PlatformDiscord.IsValidLink("https://canary.discord.com/app") {
		t.Error("expected subdomain of a whitelisted root domain to match")
	}
}

func TestIsValidLink_EmptyAndSingleLabelHosts_Rejected(t *testing.T) {
	t.Parallel()

	if PlatformDiscord.IsValidLink("") {
		t.Error("expected empty link to be rejected")
	}
	if PlatformDiscord.IsValidLink("discord") {
		t.Error("expected single-label host to be rejected")
	}
	if PlatformDiscord.IsValidLink("https://localhost/discord.gg") {
		t.Error("expected host without a dot to be rejected")
	}
}

func TestDomains_AlwaysIncludePlatformDotCom(t *testing.T) {
	t.Parallel()

	for _, platform := range Platforms() {
		implicit := string(platform) + ".com"
		found := false
		for _, domain := range platform.Domains() {
			if domain == implicit {
				found = true
			}
		}
		if !found {
			t.Errorf("%s domains missing %s", platform, implicit)
		}
	}
}
