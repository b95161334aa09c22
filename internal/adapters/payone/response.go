package payone

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kevin07696/payone-gateway/internal/adapters/ports"
	"github.com/kevin07696/payone-gateway/internal/domain"
)

var lineBreaks = regexp.MustCompile(`[\r\n]+`)

// ParseResponse overlays the gateway's name=value lines on the request
// mapping. Lines without "=" are skipped; only the first "=" separates name
// from value. Response values win over request values with the same name.
// The text is passed through in whatever encoding the gateway declared.
func ParseResponse(body string, request Fields) Fields {
	data := request.Clone()

	body = strings.TrimSpace(body)
	if body == "" {
		return data
	}

	for _, line := range lineBreaks.Split(body, -1) {
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		data[name] = value
	}

	return data
}

// resultBuilder is the default ResponseBuilder for Server API responses
type resultBuilder struct{}

// NewResultBuilder returns the default ResponseBuilder
func NewResultBuilder() ports.ResponseBuilder {
	return resultBuilder{}
}

// Build maps the merged mapping onto a Result. An ERROR status is a valid
// result, not an error; only a mapping without any status is rejected.
func (resultBuilder) Build(data map[string]string) (*ports.Result, error) {
	status := strings.ToUpper(strings.TrimSpace(data["status"]))
	switch status {
	case ports.StatusApproved, ports.StatusRedirect, ports.StatusPending, ports.StatusError:
	case "":
		return nil, domain.WrapError(domain.ErrorCodeGatewayError, "response carries no status", domain.ErrInvalidGatewayResponse)
	default:
		return nil, domain.WrapError(domain.ErrorCodeGatewayError,
			fmt.Sprintf("unknown response status %q", status), domain.ErrInvalidGatewayResponse)
	}

	return &ports.Result{
		Status:          status,
		TransactionID:   data["txid"],
		UserID:          data["userid"],
		Reference:       data["reference"],
		RedirectURL:     data["redirecturl"],
		ErrorCode:       data["errorcode"],
		ErrorMessage:    data["errormessage"],
		CustomerMessage: data["customermessage"],
		Data:            data,
	}, nil
}
