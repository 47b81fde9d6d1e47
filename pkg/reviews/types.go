package reviews

// RawReview is the review record shape returned by the reviews upstream.
// Only whitelisted fields survive sanitization; everything else here is
// internal and never reaches API consumers.
type RawReview struct {
	ID            int64        `json:"id"`
	Rating        int          `json:"rating"`
	Published     bool         `json:"published"`
	Hidden        bool         `json:"hidden"`
	Title         string       `json:"title"`
	Body          string       `json:"body"`
	CreatedAt     string       `json:"created_at"`
	ProductHandle string       `json:"product_handle"`
	ProductTitle  string       `json:"product_title"`
	IPAddress     string       `json:"ip_address"`
	Reviewer      RawReviewer  `json:"reviewer"`
	Pictures      []RawPicture `json:"pictures"`
}

// RawReviewer is the nested reviewer shape from the upstream.
type RawReviewer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RawPicture is the nested picture shape from the upstream.
type RawPicture struct {
	URLs RawPictureURLs `json:"urls"`
}

// RawPictureURLs holds the size variants of one review picture.
type RawPictureURLs struct {
	Huge    string `json:"huge"`
	Compact string `json:"compact"`
}

// Review is the public review shape served by the proxy.
type Review struct {
	Rating        int       `json:"rating"`
	CreatedAt     string    `json:"createdAt"`
	ProductHandle string    `json:"productHandle"`
	ProductTitle  string    `json:"productTitle"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	ReviewerName  string    `json:"reviewerName"`
	Pictures      []Picture `json:"pictures"`
}

// Picture is the public picture shape, one entry per source picture in
// source order.
type Picture struct {
	HugeURL    string `json:"hugeUrl"`
	CompactURL string `json:"compactUrl"`
}
