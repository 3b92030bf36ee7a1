// Package extract turns uploaded CV documents into plain text.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"code.sajari.com/docconv"
	"github.com/gabriel-vasile/mimetype"

	"jobassist/internal/model"
)

// Accepted upload content types.
const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeZip  = "application/zip"
)

var ErrUnsupportedType = errors.New("unsupported content type")

// Extractor converts a document stream of a given content type to text.
type Extractor interface {
	Supports(mimeType string) bool
	Extract(ctx context.Context, mimeType string, r io.Reader) (string, error)
}

type converter func(io.Reader) (string, map[string]string, error)

// Docconv extracts PDF and DOCX text with code.sajari.com/docconv.
// PDF conversion shells out to pdftotext, which must be on PATH.
type Docconv struct {
	converters map[string]converter
}

func NewDocconv() *Docconv {
	return &Docconv{converters: map[string]converter{
		MimePDF:  docconv.ConvertPDF,
		MimeDOCX: docconv.ConvertDocx,
	}}
}

func (d *Docconv) Supports(mimeType string) bool {
	_, ok := d.converters[baseType(mimeType)]
	return ok
}

// Extract returns the document body with surrounding whitespace trimmed.
func (d *Docconv) Extract(ctx context.Context, mimeType string, r io.Reader) (string, error) {
	conv, ok := d.converters[baseType(mimeType)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := convert(conv, r)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", FileType(mimeType), err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return strings.TrimSpace(body), nil
}

// convert turns a converter panic into an error; docconv dereferences
// missing archive entries on malformed DOCX files.
func convert(conv converter, r io.Reader) (body string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed document: %v", p)
		}
	}()
	body, _, err = conv(r)
	return body, err
}

// FileType maps an accepted content type to the short type stored with a CV.
func FileType(mimeType string) string {
	switch baseType(mimeType) {
	case MimePDF:
		return model.FileTypePDF
	case MimeDOCX:
		return model.FileTypeDOCX
	case "application/msword":
		return model.FileTypeDOC
	case "text/plain":
		return model.FileTypeText
	default:
		return ""
	}
}

// ContentType normalises a declared content type: parameters are dropped and
// the result is lower case.
func ContentType(declared string) string {
	return baseType(declared)
}

// Matches reports whether head is consistent with the declared type. A DOCX
// only has to be a zip container; docconv checks the rest.
func Matches(declared string, head []byte) bool {
	want := baseType(declared)
	if want == MimeDOCX {
		want = mimeZip
	}
	for m := mimetype.Detect(head); m != nil; m = m.Parent() {
		if m.Is(want) {
			return true
		}
	}
	return false
}

func baseType(mimeType string) string {
	t, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(t))
}
