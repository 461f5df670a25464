package validators

import (
	"net/url"
	"regexp"
	"strings"
)

// Format checks are advisory: callers keep the value and surface the message,
// they never block navigation.

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func Email(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	return emailRe.MatchString(s)
}

// NormalizePhone strips spaces and dashes before validation/storage.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	return phone
}

func Phone(s string) bool {
	s = NormalizePhone(s)
	if s == "" {
		return true
	}
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if len(s) < 8 || len(s) > 15 {
		return false
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

func URL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		// accept bare domains like example.com
		return strings.Contains(s, ".") && !strings.Contains(s, " ")
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
