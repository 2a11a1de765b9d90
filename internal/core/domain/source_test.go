package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageFilename(t *testing.T) {
	pdf, shot, page, err := ParsePageFilename("report-2024.pdf_page_17.png")
	require.NoError(t, err)
	assert.Equal(t, "report-2024.pdf", pdf)
	assert.Equal(t, "report-2024.pdf_page_17.png", shot)
	assert.Equal(t, 17, page)
}

func TestParsePageFilename_PageMarkerInDocumentName(t *testing.T) {
	// A document whose own name contains "_page_" still splits at the
	// real page marker after the .pdf suffix.
	pdf, _, page, err := ParsePageFilename("doc_page_1.pdf_page_3.png")
	require.NoError(t, err)
	assert.Equal(t, "doc_page_1.pdf", pdf)
	assert.Equal(t, 3, page)
}

func TestParsePageFilename_Malformed(t *testing.T) {
	for _, name := range []string{
		"report.pdf",
		"report.pdf_page_.png",
		"report.pdf_page_3.jpg",
		"page_3.png",
		"",
	} {
		_, _, _, err := ParsePageFilename(name)
		var malformed *MalformedFilenameError
		require.ErrorAs(t, err, &malformed, "name %q", name)
		assert.Equal(t, name, malformed.Name)
	}
}
