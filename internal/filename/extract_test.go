package filename

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		platform Platform
		user     string
		content  string
	}{
		{
			name:     "connective title with colon",
			in:       "X 上的 宝玉：OpenAI 新功能分析",
			platform: PlatformX,
			user:     "宝玉",
			content:  "OpenAI 新功能分析",
		},
		{
			name:     "legacy underscore status blob",
			in:       "twitter.com_dotey_status_1844736929175105536",
			platform: PlatformX,
			user:     "dotey",
			content:  "",
		},
		{
			name:     "x status with slashes",
			in:       "https://x.com/karpathy/status/123456789",
			platform: PlatformX,
			user:     "karpathy",
			content:  "",
		},
		{
			name:     "notification count prefix",
			in:       "(3) Twitter 上的 dotey：新的提示词技巧",
			platform: PlatformX,
			user:     "dotey",
			content:  "新的提示词技巧",
		},
		{
			name:     "youtube watch url",
			in:       "https://www.youtube.com/watch?v=dQw4w9WgXcQ 经典视频",
			platform: PlatformYouTube,
			user:     "",
			content:  "经典视频",
		},
		{
			name:     "youtube title suffix",
			in:       "Go Concurrency Patterns - YouTube",
			platform: PlatformYouTube,
			user:     "",
			content:  "Go Concurrency Patterns",
		},
		{
			name:     "reddit subreddit path",
			in:       "reddit.com_r_golang_comments_1abc2d",
			platform: PlatformReddit,
			user:     "golang",
			content:  "",
		},
		{
			name:     "reddit thread with slug",
			in:       "reddit.com/r/golang/comments/1abc2d/generics_in_practice",
			platform: PlatformReddit,
			user:     "golang",
			content:  "",
		},
		{
			name:     "status blob with surrounding text",
			in:       "宝玉 分享 x.com_dotey_status_99 好文",
			platform: PlatformX,
			user:     "dotey",
			content:  "宝玉 分享 好文",
		},
		{
			name:     "tiktok handle",
			in:       "tiktok.com_@cookingmama_video_7123",
			platform: PlatformTikTok,
			user:     "cookingmama",
			content:  "",
		},
		{
			name:     "instagram post path",
			in:       "instagram.com_p_Cxy12AbCdEf",
			platform: PlatformInstagram,
			user:     "",
			content:  "",
		},
		{
			name:     "linkedin profile",
			in:       "linkedin.com_in_jane-doe-12345",
			platform: PlatformLinkedIn,
			user:     "jane-doe-12345",
			content:  "",
		},
		{
			name:     "bare x domain",
			in:       "看看 x.com 上的热帖",
			platform: PlatformX,
			user:     "",
			content:  "看看 上的热帖",
		},
		{
			name:     "no platform",
			in:       "深入理解数据库索引原理",
			platform: PlatformUnknown,
			user:     "",
			content:  "深入理解数据库索引原理",
		},
		{
			name:     "empty input",
			in:       "",
			platform: PlatformUnknown,
			user:     "",
			content:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.in)
			if got.Platform != tt.platform {
				t.Errorf("Extract(%q).Platform = %v, want %v", tt.in, got.Platform, tt.platform)
			}
			if got.User != tt.user {
				t.Errorf("Extract(%q).User = %q, want %q", tt.in, got.User, tt.user)
			}
			if got.Content != tt.content {
				t.Errorf("Extract(%q).Content = %q, want %q", tt.in, got.Content, tt.content)
			}
		})
	}
}

func TestExtractStructuralUser(t *testing.T) {
	// A capture that is only a path keyword falls back to the default token.
	got := Extract("x.com_status_status_12345")
	if got.Platform != PlatformX {
		t.Fatalf("Platform = %v, want %v", got.Platform, PlatformX)
	}
	if got.User != defaultUser {
		t.Errorf("User = %q, want %q", got.User, defaultUser)
	}
}

func TestPlatformString(t *testing.T) {
	if got := PlatformX.String(); got != "X" {
		t.Errorf("PlatformX.String() = %q, want X", got)
	}
	if got := PlatformUnknown.String(); got != "Web" {
		t.Errorf("PlatformUnknown.String() = %q, want Web", got)
	}
	if PlatformUnknown.Known() {
		t.Error("PlatformUnknown.Known() = true, want false")
	}
}
