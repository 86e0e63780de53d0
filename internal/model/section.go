package model

// SectionInput is the externally supplied shape of one section at
// document load time. Content may be anything an upstream producer
// emits: finished HTML, bold-marked category text, bullet-delimited
// text, or plain prose. Visible defaults to true when omitted.
type SectionInput struct {
	ID      string `json:"id"`
	Kind    string `json:"kind,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order"`
	Visible *bool  `json:"visible,omitempty"`
}

// LoadRequest is the payload that opens an editing session.
type LoadRequest struct {
	SourceURL string         `json:"source_url,omitempty"`
	Sections  []SectionInput `json:"sections"`
}
