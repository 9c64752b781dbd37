package ports

import (
	"context"

	"github.com/foliolabs/folio/pkg/domain"
)

// PortfolioSource provides the static site content.
type PortfolioSource interface {
	Portfolio(ctx context.Context) (domain.Portfolio, error)
}
