package bank

import "regexp"

// canvasAssetRe matches Canvas-exported assessment image links; group 1 is the verifier.
var canvasAssetRe = regexp.MustCompile(`/assessment_questions/[^"]*verifier=([^"&]+)[^"]*`)

// RewriteImageURLs points Canvas assessment image links at the local img/ directory under base.
func RewriteImageURLs(text, base string) string {
	if text == "" {
		return ""
	}
	return canvasAssetRe.ReplaceAllStringFunc(text, func(match string) string {
		m := canvasAssetRe.FindStringSubmatch(match)
		if len(m) < 2 {
			return match
		}
		return base + "img/" + m[1] + ".jpg"
	})
}
