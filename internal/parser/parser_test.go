package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtension(t *testing.T) {
	assert.Equal(t, "pdf", Extension("resume.PDF"))
	assert.Equal(t, "docx", Extension("dir/cv.docx"))
	assert.Equal(t, "", Extension("noextension"))
}

func TestExtractText_UnsupportedFormat(t *testing.T) {
	_, err := ExtractText("resume.txt", []byte("plain text"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ExtractText("resume", nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractText_CorruptedPDF(t *testing.T) {
	_, err := ExtractText("resume.pdf", []byte("not a pdf at all"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestExtractText_CorruptedDocx(t *testing.T) {
	_, err := ExtractText("resume.docx", []byte("not a zip archive"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupted)
}
