package reviews

// minRating is the lowest rating surfaced to storefront consumers.
const minRating = 4

// publishable reports whether a raw review may be surfaced at all.
func publishable(r RawReview) bool {
	return r.Published && r.Rating >= minRating
}

// sanitize projects a raw review onto the public shape. Only the fields
// written here ever leave the proxy; new upstream fields stay internal
// until explicitly whitelisted.
func sanitize(r RawReview) Review {
	pictures := make([]Picture, 0, len(r.Pictures))
	for _, p := range r.Pictures {
		pictures = append(pictures, Picture{
			HugeURL:    p.URLs.Huge,
			CompactURL: p.URLs.Compact,
		})
	}

	return Review{
		Rating:        r.Rating,
		CreatedAt:     r.CreatedAt,
		ProductHandle: r.ProductHandle,
		ProductTitle:  r.ProductTitle,
		Title:         r.Title,
		Body:          r.Body,
		ReviewerName:  r.Reviewer.Name,
		Pictures:      pictures,
	}
}

// Sanitize filters a raw dataset down to publishable reviews and projects
// each survivor onto the public shape, preserving source order.
func Sanitize(raw []RawReview) []Review {
	out := make([]Review, 0, len(raw))
	for _, r := range raw {
		if !publishable(r) {
			continue
		}
		out = append(out, sanitize(r))
	}
	return out
}
