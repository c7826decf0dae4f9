package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
)

// Form accumulates fields and files for a multipart/form-data request.
// Absent optional fields are simply never added, so they are omitted from the
// wire payload rather than sent empty.
type Form struct {
	fields []formField
	files  []formFile
	err    error
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	field    string
	filename string
	reader   io.Reader
}

func NewForm() *Form { return &Form{} }

// AddField appends a plain text field.
func (f *Form) AddField(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// AddJSON appends a field whose value is the JSON encoding of v. The video
// upload endpoint expects its metadata this way, under "data".
func (f *Form) AddJSON(name string, v any) *Form {
	data, err := json.Marshal(v)
	if err != nil && f.err == nil {
		f.err = fmt.Errorf("marshalling field %q: %w", name, err)
		return f
	}
	f.fields = append(f.fields, formField{name: name, value: string(data)})
	return f
}

// AddFile appends a file part read from r.
func (f *Form) AddFile(field, filename string, r io.Reader) *Form {
	f.files = append(f.files, formFile{field: field, filename: filename, reader: r})
	return f
}

func (f *Form) encode() (contentType string, body io.Reader, err error) {
	if f.err != nil {
		return "", nil, f.err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return "", nil, err
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return "", nil, err
		}
		if _, err := io.Copy(part, file.reader); err != nil {
			return "", nil, fmt.Errorf("copying file %q: %w", file.filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, err
	}
	return w.FormDataContentType(), &buf, nil
}
