package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vbo-tools/dadismatch/pkg/constants"
	"github.com/vbo-tools/dadismatch/pkg/errors"
	"github.com/vbo-tools/dadismatch/pkg/logging"
)

// maxErrorBody bounds how much of a failed response ends up in an error.
const maxErrorBody = 512

// DecodeResponse decodes a JSON response into target. Non-200 responses
// become an *errors.APIError; bodies larger than constants.MaxResponseBytes
// or that fail to decode become an *errors.ParseError.
func DecodeResponse(resp *http.Response, registry string, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxResponseBytes+1))
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	endpoint := ""
	if resp.Request != nil && resp.Request.URL != nil {
		endpoint = resp.Request.URL.Path
	}

	if resp.StatusCode != http.StatusOK {
		return &errors.APIError{
			Registry:   registry,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, body),
			Endpoint:   endpoint,
		}
	}

	if len(body) > constants.MaxResponseBytes {
		return errors.NewParseError("json", endpoint,
			fmt.Sprintf("response exceeds %d bytes", constants.MaxResponseBytes), nil)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", endpoint, err)
	}

	return nil
}

func errorMessage(status int, body []byte) string {
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return msg
}
