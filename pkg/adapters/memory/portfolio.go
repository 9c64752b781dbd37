package memory

import (
	"context"

	"github.com/foliolabs/folio/pkg/domain"
)

// PortfolioSource implements ports.PortfolioSource with seeded static data.
type PortfolioSource struct {
	content domain.Portfolio
}

// NewPortfolioSource creates a source holding the default seed content.
func NewPortfolioSource() *PortfolioSource {
	return &PortfolioSource{content: seed()}
}

// Portfolio returns the site content. The slices are shared; callers treat
// them as read-only.
func (p *PortfolioSource) Portfolio(ctx context.Context) (domain.Portfolio, error) {
	return p.content, nil
}

func seed() domain.Portfolio {
	return domain.Portfolio{
		Projects: []domain.Project{
			{
				ID:          1,
				Title:       "AI Portfolio Assistant",
				Description: "A co-browsing chatbot that helps visitors navigate this portfolio.",
				TechStack:   []string{"React", "TypeScript", "OpenAI", "Tailwind"},
				Link:        "#",
				ImageURL:    "https://images.unsplash.com/photo-1531297461136-8208631433e7?w=800&q=80",
			},
			{
				ID:          2,
				Title:       "E-Commerce Dashboard",
				Description: "Real-time analytics dashboard for online retailers.",
				TechStack:   []string{"Vue.js", "D3.js", "Node.js"},
				Link:        "#",
				ImageURL:    "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=800&q=80",
			},
			{
				ID:          3,
				Title:       "Social Media App",
				Description: "Connect and share moments with friends.",
				TechStack:   []string{"React Native", "Firebase", "Redux"},
				Link:        "#",
				ImageURL:    "https://images.unsplash.com/photo-1611162617474-5b21e879e113?w=800&q=80",
			},
		},
		Skills: []domain.Skill{
			{ID: 1, Category: "Frontend", Items: []string{"React", "TypeScript", "Tailwind CSS", "Framer Motion"}},
			{ID: 2, Category: "Backend", Items: []string{"Node.js", "Express", "PostgreSQL", "Python"}},
			{ID: 3, Category: "AI/ML", Items: []string{"OpenAI API", "TensorFlow", "LangChain"}},
		},
		Experience: []domain.Experience{
			{
				ID:          1,
				Role:        "Senior Full Stack Developer",
				Company:     "Tech Corp",
				Period:      "2023 - Present",
				Description: "Leading a team of 5 developers building cloud-native applications.",
			},
			{
				ID:          2,
				Role:        "Software Engineer",
				Company:     "StartUp Inc",
				Period:      "2021 - 2023",
				Description: "Developed and maintained multiple React-based web applications.",
			},
		},
	}
}
