package service

import (
	"mime/multipart"

	"github.com/pkg/errors"
)

// MaxUploadSize bounds spreadsheets accepted for import.
const MaxUploadSize = 10 << 20

// MaxUploadBody caps the whole multipart request, leaving room for the
// form envelope around the file.
const MaxUploadBody = MaxUploadSize + 1<<20

var spreadsheetTypes = []string{
	ExcelContentType,
	"application/octet-stream",
}

func InArray[T comparable](val T, array []T) bool {
	for _, v := range array {
		if val == v {
			return true
		}
	}
	return false
}

// OpenSpreadsheet checks an uploaded workbook and opens it for reading.
func OpenSpreadsheet(file *multipart.FileHeader) (multipart.File, error) {
	if file == nil {
		return nil, errors.New("file is required")
	}

	if file.Size > MaxUploadSize {
		return nil, errors.Errorf("file is larger than %d bytes", MaxUploadSize)
	}

	if ct := file.Header.Get("Content-Type"); ct != "" && !InArray(ct, spreadsheetTypes) {
		return nil, errors.Errorf("invalid file type, expected %s, got %s", ExcelContentType, ct)
	}

	src, err := file.Open()
	if err != nil {
		return nil, errors.Wrap(err, "opening upload")
	}

	return src, nil
}
