package ingestion

import (
	"net/url"
	"strings"
)

// Platform is a known job board
type Platform string

// Known platforms
const (
	PlatformNaukri      Platform = "naukri"
	PlatformInternshala Platform = "internshala"
	PlatformLinkedIn    Platform = "linkedin"
	PlatformGreenhouse  Platform = "greenhouse"
	PlatformLever       Platform = "lever"
	PlatformUnknown     Platform = "unknown"
)

var platformHosts = []struct {
	platform Platform
	hosts    []string
}{
	{PlatformNaukri, []string{"naukri.com"}},
	{PlatformInternshala, []string{"internshala.com"}},
	{PlatformLinkedIn, []string{"linkedin.com"}},
	{PlatformGreenhouse, []string{"greenhouse.io"}},
	{PlatformLever, []string{"lever.co"}},
}

// DetectPlatform identifies the job board from a URL's host
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, p := range platformHosts {
		for _, h := range p.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return p.platform
			}
		}
	}
	return PlatformUnknown
}

// ContentSelectors returns the selectors tried, in order, to find the posting body
func ContentSelectors(platform Platform) []string {
	generic := []string{
		".job-description", "#job-description", ".job-details", ".posting-content",
		"[data-testid='job-description']", "main", "article", ".content", "#content",
	}
	switch platform {
	case PlatformNaukri:
		return append([]string{".styles_JDC__dang-inner-html__h0K4t", ".job-desc", ".dang-inner-html"}, generic...)
	case PlatformInternshala:
		return append([]string{".internship_details", ".detail_view", ".text-container"}, generic...)
	case PlatformLinkedIn:
		return append([]string{".description__text", ".show-more-less-html__markup"}, generic...)
	case PlatformGreenhouse:
		return append([]string{".job__description", "#content"}, generic...)
	case PlatformLever:
		return append([]string{".posting-page", ".section-wrapper.page-full-width"}, generic...)
	default:
		return generic
	}
}

// NoiseSelectors returns elements removed before extraction
func NoiseSelectors(platform Platform) []string {
	common := []string{
		"nav", "footer", "header", "script", "style", "noscript", "form", "iframe",
		".cookie-banner", ".cookie-consent", ".social-share", ".share-buttons",
		".apply-button-container", ".similar-jobs", ".ad", ".ads", ".sidebar",
	}
	switch platform {
	case PlatformNaukri:
		return append(common, ".styles_jhc__apply-button-container__5Bqnb", ".other-details")
	case PlatformInternshala:
		return append(common, ".apply_button_container", ".similar_internships")
	case PlatformLinkedIn:
		return append(common, ".top-card-layout__cta-container", ".similar-jobs")
	case PlatformGreenhouse:
		return append(common, ".application--wrapper", "#usa_self_id_section")
	case PlatformLever:
		return append(common, ".apply-section", ".posting-apply")
	default:
		return common
	}
}
