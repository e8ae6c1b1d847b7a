package relay

import "strings"

var mobileMarkers = []string{"iphone", "ipad", "ipod", "android", "mobile"}

// isMobile reports whether a User-Agent string looks like a mobile
// browser. Mobile agents get the custom-scheme deep link; everything
// else gets the web callback URL.
func isMobile(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, marker := range mobileMarkers {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	return false
}
