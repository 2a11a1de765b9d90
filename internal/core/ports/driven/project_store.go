package driven

import "github.com/ragfront/ragfront-core/internal/core/domain"

// PageText is one cached per-page extraction file, in directory listing
// order.
type PageText struct {
	Name    string // filename, e.g. "report.pdf_page_3.png.txt"
	Content string
}

// ProjectStore manages the filesystem layout of projects and resolves their
// configuration.
type ProjectStore interface {
	// Resolve validates the name and returns the project, or
	// domain.ErrProjectNotFound.
	Resolve(name string) (domain.Project, error)

	// Config loads settings.yaml merged with .env for the project.
	Config(p domain.Project) (*domain.ProjectConfig, error)

	Create(name string) (domain.Project, error)
	Delete(name string) error
	List() ([]string, error)

	// IsBuilt is the advisory build-state check over the required artifact
	// file set. It is not re-validated transactionally at query time.
	IsBuilt(p domain.Project) bool

	// PageTexts lists the project's per-page extraction cache, or an empty
	// slice when the cache directory does not exist.
	PageTexts(p domain.Project) ([]PageText, error)
}
