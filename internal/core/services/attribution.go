package services

import (
	"log/slog"
	"strings"
	"time"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// signedURLTTL is the lifetime of generated source download links.
const signedURLTTL = time.Hour

// Attribution resolves context snippets back to the document pages they were
// extracted from by scanning the project's per-page extraction cache.
type Attribution struct {
	projects driven.ProjectStore
	signer   driven.BlobSigner
	log      *slog.Logger
}

// NewAttribution creates an Attribution resolver.
func NewAttribution(projects driven.ProjectStore, signer driven.BlobSigner, log *slog.Logger) *Attribution {
	return &Attribution{projects: projects, signer: signer, log: log}
}

// Resolve returns one record per distinct page image whose cached text
// contains any of the context snippets. Duplicate snippets are checked once;
// a page already attributed is not attributed again. URL signing failures
// are captured per record and never abort the remaining sources. The result
// is empty (never nil) when the project has no page cache or nothing
// matches.
func (a *Attribution) Resolve(p domain.Project, sources []domain.Row) []domain.SourceRecord {
	records := []domain.SourceRecord{}
	if len(sources) == 0 {
		return records
	}

	pages, err := a.projects.PageTexts(p)
	if err != nil {
		a.log.Warn("page cache scan failed", "project", p.Name, "error", err)
		return records
	}
	if len(pages) == 0 {
		return records
	}

	seenSnippet := make(map[string]bool)
	seenPage := make(map[string]bool)

	for _, src := range sources {
		snippet := src["text"]
		if snippet == "" || seenSnippet[snippet] {
			continue
		}
		seenSnippet[snippet] = true

		for _, page := range pages {
			if !strings.Contains(page.Content, snippet) {
				continue
			}
			name := strings.TrimSuffix(page.Name, ".txt")
			pdfFile, screenshotFile, pageNum, err := domain.ParsePageFilename(name)
			if err != nil {
				a.log.Warn("skipping page cache entry", "name", page.Name, "error", err)
				continue
			}
			if seenPage[screenshotFile] {
				continue
			}
			seenPage[screenshotFile] = true

			rec := domain.SourceRecord{
				PDFFile:        pdfFile,
				ScreenshotFile: screenshotFile,
				PageNumber:     pageNum,
			}
			if url, err := a.signer.SignedURL(p.Name, pdfFile, signedURLTTL); err != nil {
				rec.PDFURLError = err.Error()
			} else {
				rec.PDFURL = url
			}
			if url, err := a.signer.SignedURL(p.Name, screenshotFile, signedURLTTL); err != nil {
				rec.ScreenshotURLError = err.Error()
			} else {
				rec.ScreenshotURL = url
			}
			records = append(records, rec)
		}
	}
	return records
}
