package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// Recognized Instagram URL shapes. Scheme and www. are optional, trailing
// slash and query parameters (tracking noise) are tolerated. Shortened or
// redirect URLs are not followed and fail validation.
var (
	postRefRe  = regexp.MustCompile(`^(?:https?://)?(?:www\.)?instagram\.com/(p|reel|tv)/([A-Za-z0-9_-]+)(?:[/?].*)?$`)
	storyRefRe = regexp.MustCompile(`^(?:https?://)?(?:www\.)?instagram\.com/stories/[A-Za-z0-9_.]+/([0-9]+)(?:[/?].*)?$`)
)

// ParseReference validates a user-supplied string against the recognized
// Instagram URL shapes and extracts the canonical post identifier.
// Returns ErrInvalidURL for anything else; no side effects either way.
func ParseReference(raw string) (Reference, error) {
	s := strings.TrimSpace(raw)

	if m := postRefRe.FindStringSubmatch(s); m != nil {
		return Reference{
			Shortcode: m[2],
			Kind:      ReferenceKind(m[1]),
			URL:       s,
		}, nil
	}

	if m := storyRefRe.FindStringSubmatch(s); m != nil {
		return Reference{
			Shortcode: m[1],
			Kind:      KindStory,
			URL:       s,
		}, nil
	}

	return Reference{}, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
}
