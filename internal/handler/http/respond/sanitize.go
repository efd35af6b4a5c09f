package respond

import "regexp"

// Ordered most specific first; later patterns must not re-match masked text.
var secretPatterns = []struct {
	re   *regexp.Regexp
	mask string
}{
	{regexp.MustCompile(`sk-ant-[a-zA-Z0-9_-]+`), "sk-ant-****"},
	{regexp.MustCompile(`sk-[a-zA-Z0-9_-]{10,}`), "sk-****"},
	{regexp.MustCompile(`AIza[0-9A-Za-z_-]{20,}`), "AIza****"},
	{regexp.MustCompile(`hf_[A-Za-z0-9]{10,}`), "hf_****"},
	{regexp.MustCompile(`(?i)([?&](?:key|api_key|token)=)[^&\s"]+`), "${1}****"},
	{regexp.MustCompile(`(?i)(Bearer\s+)[A-Za-z0-9._~+/=-]+`), "${1}****"},
	{regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`), "://$1:****@"},
}

// SanitizeError returns err's message with provider API keys, URL
// credentials and bearer tokens masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, p := range secretPatterns {
		msg = p.re.ReplaceAllString(msg, p.mask)
	}
	return msg
}
