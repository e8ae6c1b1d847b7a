package relay

import "testing"

func TestIsMobile(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want bool
	}{
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", true},
		{"ipad", "Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X)", true},
		{"android", "Mozilla/5.0 (Linux; Android 14; Pixel 8)", true},
		{"generic mobile", "SomeBrowser/1.0 Mobile Safari", true},
		{"uppercase marker", "MOZILLA/5.0 (IPHONE)", true},
		{"mac desktop", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)", false},
		{"windows desktop", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)", false},
		{"curl", "curl/8.4.0", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isMobile(tt.ua); got != tt.want {
				t.Errorf("isMobile(%q) = %v, want %v", tt.ua, got, tt.want)
			}
		})
	}
}
