package domain

import (
	"regexp"
	"strconv"
)

// pageFileRe is the fixed filename grammar of per-page extraction caches:
// <document>.pdf_page_<N>.png (the trailing .txt cache suffix is stripped by
// the caller).
var pageFileRe = regexp.MustCompile(`^(.*?\.pdf)_page_(\d+)\.png$`)

// SourceRecord cross-references a context snippet back to its originating
// document page. URL fields carry the lookup error string instead of a URL
// when signing failed, so one bad blob response does not abort attribution
// for other sources.
type SourceRecord struct {
	PDFFile            string `json:"pdf_file"`
	ScreenshotFile     string `json:"screenshot_file"`
	PageNumber         int    `json:"page_number"`
	PDFURL             string `json:"pdf_sas_url"`
	PDFURLError        string `json:"pdf_sas_url_error"`
	ScreenshotURL      string `json:"screenshot_sas_url"`
	ScreenshotURLError string `json:"screenshot_sas_url_error"`
}

// ParsePageFilename recovers (document, page image, page number) from a
// cached page filename. Returns a MalformedFilenameError when the grammar
// does not match.
func ParsePageFilename(name string) (pdfFile, screenshotFile string, page int, err error) {
	m := pageFileRe.FindStringSubmatch(name)
	if m == nil {
		return "", "", 0, &MalformedFilenameError{Name: name}
	}
	page, err = strconv.Atoi(m[2])
	if err != nil {
		return "", "", 0, &MalformedFilenameError{Name: name}
	}
	return m[1], m[0], page, nil
}
