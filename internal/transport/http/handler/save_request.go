package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var errNotText = errors.New("value cannot be stored as text")

// SaveMessageRequest carries the fields exactly as sent; both are optional.
type SaveMessageRequest struct {
	Name    string `form:"name"`
	Message string `form:"message"`
}

// saveMessageJSON keeps each field undecoded so scalars of any JSON type can
// be stored in their text form.
type saveMessageJSON struct {
	Name    json.RawMessage `json:"name"`
	Message json.RawMessage `json:"message"`
}

// bindSaveRequest reads the body as JSON or form data. An absent or empty
// body yields empty fields. A decode failure is returned as is; a field
// holding an object or array is reported with errNotText.
func bindSaveRequest(c *gin.Context) (SaveMessageRequest, error) {
	var req SaveMessageRequest
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return req, nil
	}

	if c.ContentType() != binding.MIMEJSON {
		if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
			return req, err
		}
		return req, nil
	}

	var body saveMessageJSON
	if err := c.ShouldBindJSON(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return req, nil
		}
		return req, err
	}

	var err error
	if req.Name, err = textValue(body.Name); err != nil {
		return req, fmt.Errorf("field name: %w", err)
	}
	if req.Message, err = textValue(body.Message); err != nil {
		return req, fmt.Errorf("field message: %w", err)
	}
	return req, nil
}

// textValue renders a JSON scalar as text: strings verbatim, numbers in their
// shortest decimal form, booleans as true/false. null and absent are empty.
func textValue(raw json.RawMessage) (string, error) {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return "", nil
	}

	switch v[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", errNotText
	case 't', 'f':
		return string(v), nil
	}

	f, err := strconv.ParseFloat(string(v), 64)
	if err != nil {
		return "", fmt.Errorf("number %s: %w", v, err)
	}
	return formatNumber(f), nil
}

// formatNumber switches to exponent notation outside [1e-6, 1e21), the range
// where browsers print plain decimals.
func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
