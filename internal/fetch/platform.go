package fetch

import (
	"net/url"
	"strings"
)

// Board is a job board whose markup is known.
type Board string

// Known job boards.
const (
	BoardGreenhouse Board = "greenhouse"
	BoardLever      Board = "lever"
	BoardWorkday    Board = "workday"
	BoardAshby      Board = "ashby"
	BoardLinkedIn   Board = "linkedin"
	BoardUnknown    Board = "unknown"
)

var boardHosts = []struct {
	board    Board
	suffixes []string
}{
	{BoardGreenhouse, []string{"greenhouse.io"}},
	{BoardLever, []string{"lever.co"}},
	{BoardWorkday, []string{"workday.com", "myworkdayjobs.com"}},
	{BoardAshby, []string{"ashbyhq.com"}},
	{BoardLinkedIn, []string{"linkedin.com"}},
}

// DetectBoard identifies the job board hosting rawURL.
func DetectBoard(rawURL string) Board {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return BoardUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, b := range boardHosts {
		for _, suffix := range b.suffixes {
			if host == suffix || strings.HasSuffix(host, "."+suffix) {
				return b.board
			}
		}
	}
	return BoardUnknown
}

// ContentSelectors returns the selectors tried, in order, to locate the
// posting body on board.
func ContentSelectors(board Board) []string {
	switch board {
	case BoardGreenhouse:
		return []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"}
	case BoardLever:
		return []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"}
	case BoardWorkday:
		return []string{"[data-automation-id='jobDescription']", ".job-description"}
	case BoardAshby:
		return []string{"._descriptionText_", "[class*='descriptionText']", "main"}
	case BoardLinkedIn:
		return []string{".show-more-less-html__markup", ".description__text", "main"}
	default:
		return JobPostingSelectors()
	}
}

// NoiseSelectors returns elements stripped before extraction on board:
// application forms, EEO text and share widgets.
func NoiseSelectors(board Board) []string {
	noise := []string{
		"form", "#application-form", ".application-form", ".apply-button-container",
		"[data-testid='application-form']",
		".voluntary-disclosure", ".eeo-statement", ".eeo-section", ".legal-disclosure",
		".social-share", ".share-buttons", ".cookie-consent", ".gdpr-notice",
	}

	switch board {
	case BoardGreenhouse:
		noise = append(noise, ".application--wrapper", ".voluntary-self-id", "#usa_self_id_section")
	case BoardLever:
		noise = append(noise, ".apply-section", ".posting-apply")
	case BoardWorkday:
		noise = append(noise, "[data-automation-id='applyButton']")
	case BoardLinkedIn:
		noise = append(noise, ".top-card-layout__cta-container", ".similar-jobs")
	}
	return noise
}
