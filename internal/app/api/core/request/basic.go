// Package request provides functions to extract parameters from the request.
package request

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
)

// PathRaw returns the value of the named path parameter.
func PathRaw(r *http.Request, name string) string {
	return r.PathValue(name)
}

// Path returns the value of the named path parameter.
// The return value is trimmed of leading and trailing whitespace.
func Path(r *http.Request, name string) string {
	return strings.TrimSpace(PathRaw(r, name))
}

// PathDefault returns the value of the named path parameter.
// If the parameter is empty, it returns the default value.
func PathDefault(r *http.Request, name string, defaultValue string) string {
	value := Path(r, name)
	if value == "" {
		return defaultValue
	}

	return value
}

// PathUint returns the value of the named path parameter parsed as an
// unsigned integer. An empty or malformed parameter yields an error.
func PathUint(r *http.Request, name string) (uint, error) {
	value := Path(r, name)
	if value == "" {
		return 0, fmt.Errorf("missing %s parameter", name)
	}

	number, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}

	return uint(number), nil
}

// QueryRaw returns the value of the named query parameter.
func QueryRaw(r *http.Request, name string) string {
	return r.URL.Query().Get(name)
}

// Query returns the value of the named query parameter.
// The return value is trimmed of leading and trailing whitespace.
func Query(r *http.Request, name string) string {
	return strings.TrimSpace(QueryRaw(r, name))
}

// QueryDefault returns the value of the named query parameter.
// If the parameter is absent, it returns the default value.
func QueryDefault(r *http.Request, name string, defaultValue string) string {
	if !r.URL.Query().Has(name) {
		return defaultValue
	}

	return Query(r, name)
}

// QueryIntDefault returns the value of the named query parameter parsed as an
// integer. An absent or malformed parameter yields the default value.
func QueryIntDefault(r *http.Request, name string, defaultValue int) int {
	value := Query(r, name)
	if value == "" {
		return defaultValue
	}

	number, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return number
}

// QuerySlice returns all values of the named query parameter.
// The values are trimmed of leading and trailing whitespace.
func QuerySlice(r *http.Request, name string) []string {
	values, ok := r.URL.Query()[name]
	if !ok {
		return nil
	}

	result := make([]string, len(values))
	for i, value := range values {
		result[i] = strings.TrimSpace(value)
	}
	return result
}

// Header returns the value of the named header.
// The return value is trimmed of leading and trailing whitespace.
func Header(r *http.Request, name string) string {
	return strings.TrimSpace(r.Header.Get(name))
}

// HeaderDefault returns the value of the named header.
// If the header is not set, it returns the default value.
func HeaderDefault(r *http.Request, name, defaultValue string) string {
	if _, ok := textproto.MIMEHeader(r.Header)[name]; !ok {
		return defaultValue
	}

	return Header(r, name)
}

// Cookie returns the value of the named cookie.
// The return value is trimmed of leading and trailing whitespace.
func Cookie(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(cookie.Value)
}

// BodyJson decodes the JSON value from the request body into the target.
// The target must be a pointer to a struct or slice.
// The body reader is closed after reading.
func BodyJson(r *http.Request, target any) error {
	defer func() {
		_ = r.Body.Close()
	}()
	return json.NewDecoder(r.Body).Decode(target)
}

// BodyString returns the request body as a string.
// The content is read and returned as is, without any processing.
func BodyString(r *http.Request) (string, error) {
	defer func() {
		_ = r.Body.Close()
	}()

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}
	return string(bodyBytes), nil
}
