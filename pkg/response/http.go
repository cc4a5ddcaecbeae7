package response

import (
	"net/http"

	json "github.com/goccy/go-json"

	apierrors "github.com/Eximchain/dappbot-types/pkg/errors"
)

// encodeFailure is written when an envelope cannot be encoded.
const encodeFailure = `{"data":null,"err":{"code":"internal_error","message":"Failed to encode response"}}`

// DefaultHeaders returns the headers sent with every response.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Authorization,Content-Type",
	}
}

// Body encodes the envelope.
func (r Response) Body() ([]byte, error) {
	return json.Marshal(r.Envelope)
}

// ProxyResponse is a response rendered for a proxy integration: the body is
// the encoded envelope.
type ProxyResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// Proxy renders r. An envelope that cannot be encoded, or a status outside
// 100-999, becomes a 500.
func (r Response) Proxy() ProxyResponse {
	body, err := r.Body()
	if err != nil {
		return ProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    DefaultHeaders(),
			Body:       encodeFailure,
		}
	}
	return ProxyResponse{
		StatusCode: sendableStatus(r.StatusCode),
		Headers:    DefaultHeaders(),
		Body:       string(body),
	}
}

// Write sends r with the default headers, using the status Proxy renders.
func (r Response) Write(w http.ResponseWriter) {
	p := r.Proxy()
	for k, v := range p.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(p.StatusCode)
	_, _ = w.Write([]byte(p.Body))
}

// OK writes a 200 response.
func OK(w http.ResponseWriter, data any) {
	Success(data, Options{}).Write(w)
}

// Created writes a 201 response.
func Created(w http.ResponseWriter, data any) {
	Success(data, Options{IsCreate: true}).Write(w)
}

// Read writes the result of a read: 200, or 404 when the result says the
// item does not exist.
func Read(w http.ResponseWriter, data any) {
	Success(data, Options{IsRead: true}).Write(w)
}

// Error writes err under its own status, or 500 for plain errors.
func Error(w http.ResponseWriter, err error) {
	apiErr := apierrors.AsAPIError(err)
	if apiErr == nil {
		apiErr = apierrors.ErrInternal
	}
	UserError(apiErr, Options{ErrorResponseCode: apiErr.StatusCode}).Write(w)
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, apierrors.ErrBadRequest.WithMessage(message))
}

// ValidationErrors writes a 400 response listing failing fields.
func ValidationErrors(w http.ResponseWriter, errs map[string]string) {
	Error(w, apierrors.NewValidationErrors(errs))
}
