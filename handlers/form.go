package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"menuhub-backend/services"
	"menuhub-backend/utils"

	"github.com/gin-gonic/gin"
)

// bindForm reads a multipart, urlencoded or JSON body into a services.Form.
// Only the first value of a repeated key is kept.
func bindForm(c *gin.Context, maxFileSize int64) (*services.Form, error) {
	form := services.NewForm()

	contentType := c.ContentType()
	switch {
	case strings.HasPrefix(contentType, gin.MIMEMultipartPOSTForm):
		mf, err := c.MultipartForm()
		if err != nil {
			return nil, &services.ValidationError{Field: "form", Message: "malformed multipart body"}
		}
		for key, values := range mf.Value {
			if len(values) > 0 {
				form.Set(key, values[0])
			}
		}
		for key, headers := range mf.File {
			if len(headers) == 0 || headers[0].Size == 0 {
				continue
			}
			fh := headers[0]
			if err := utils.ValidateFileUpload(fh, maxFileSize); err != nil {
				return nil, &services.ValidationError{Field: key, Message: err.Error()}
			}
			f, err := fh.Open()
			if err != nil {
				return nil, fmt.Errorf("open upload %s: %w", key, err)
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, fmt.Errorf("read upload %s: %w", key, err)
			}
			form.SetFile(key, fh.Filename, fh.Header.Get("Content-Type"), data)
		}

	case contentType == gin.MIMEJSON:
		var body map[string]interface{}
		dec := json.NewDecoder(c.Request.Body)
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil && err != io.EOF {
			return nil, &services.ValidationError{Field: "body", Message: "malformed JSON body"}
		}
		for key, v := range body {
			switch value := v.(type) {
			case nil:
				form.Set(key, "")
			case string:
				form.Set(key, value)
			case json.Number:
				form.Set(key, value.String())
			case bool:
				form.Set(key, fmt.Sprint(value))
			default:
				return nil, &services.ValidationError{Field: key, Message: "must be a string, number or boolean"}
			}
		}

	default:
		if err := c.Request.ParseForm(); err != nil {
			return nil, &services.ValidationError{Field: "form", Message: "malformed form body"}
		}
		for key, values := range c.Request.PostForm {
			if len(values) > 0 {
				form.Set(key, values[0])
			}
		}
	}
	return form, nil
}
