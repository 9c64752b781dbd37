package domain

// Project is a portfolio project entry.
type Project struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TechStack   []string `json:"techStack"`
	Link        string   `json:"link,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
}

// Skill groups related skill items under a category.
type Skill struct {
	ID       int64    `json:"id"`
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// Experience is one entry in the work history timeline.
type Experience struct {
	ID          int64  `json:"id"`
	Role        string `json:"role"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// Portfolio bundles the static site content served by GET /api/portfolio.
type Portfolio struct {
	Projects   []Project    `json:"projects"`
	Skills     []Skill      `json:"skills"`
	Experience []Experience `json:"experience"`
}
