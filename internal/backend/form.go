package backend

import (
	"io"
	"mime/multipart"
)

// FormFromMultipart converts a parsed inbound multipart form into a Form for
// forwarding. File contents are read fully; uploads the backend accepts are
// small (hero images, logos, avatars).
func FormFromMultipart(m *multipart.Form) (*Form, error) {
	form := &Form{Fields: make(map[string]string)}

	for key, values := range m.Value {
		if len(values) > 0 {
			form.Fields[key] = values[0]
		}
	}

	for field, headers := range m.File {
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				return nil, err
			}
			content, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				return nil, err
			}
			form.Files = append(form.Files, FormFile{
				Field:       field,
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Content:     content,
			})
		}
	}

	return form, nil
}
