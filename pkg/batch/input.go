package batch

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
)

// Accepted multipart field names.
const (
	FieldFile     = "file"
	FieldFiles    = "files"
	FieldBaseName = "base_name"
)

// DefaultMaxFileSize is the per-file limit (15 MiB).
const DefaultMaxFileSize int64 = 15 << 20

const maxValueSize = 4 << 10

// ErrMalformedUpload is returned when the multipart stream cannot be read.
var ErrMalformedUpload = errors.New("malformed upload")

// Input is one uploaded part.
type Input struct {
	Field    string
	Filename string
	Data     []byte
	// Oversized is set when the part exceeded the read limit; Data is then
	// truncated and must not be used.
	Oversized bool
}

// Upload is a fully read multipart batch.
type Upload struct {
	Inputs   []Input
	BaseName string
}

// ReadMultipart collects every file part of mr, reading at most
// maxFileSize+1 bytes per part so oversized files are detected without
// buffering them whole. Non-file parts other than base_name are ignored.
func ReadMultipart(mr *multipart.Reader, maxFileSize int64) (*Upload, error) {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}

	up := &Upload{}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return up, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedUpload, err)
		}

		err = up.readPart(part, maxFileSize)
		part.Close()
		if err != nil {
			return nil, err
		}
	}
}

func (up *Upload) readPart(part *multipart.Part, maxFileSize int64) error {
	field := part.FormName()
	filename := part.FileName()

	if filename == "" && !isFileField(field) {
		if field != FieldBaseName {
			return nil
		}
		v, err := io.ReadAll(io.LimitReader(part, maxValueSize))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedUpload, err)
		}
		up.BaseName = strings.TrimSpace(string(v))
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(part, maxFileSize+1))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedUpload, err)
	}
	in := Input{Field: field, Filename: filename, Data: data}
	if int64(len(data)) > maxFileSize {
		in.Oversized = true
		in.Data = nil
	}
	up.Inputs = append(up.Inputs, in)
	return nil
}

func isFileField(field string) bool {
	return field == FieldFile || field == FieldFiles
}
