// Package response builds the {data, err} envelope every API call returns
// and picks its HTTP status.
package response

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	json "github.com/goccy/go-json"

	"github.com/Eximchain/dappbot-types/internal/schema"
	apierrors "github.com/Eximchain/dappbot-types/pkg/errors"
)

// Sentinel errors
var (
	ErrNotEnvelope = errors.New("response: not a {data, err} envelope")
	ErrBothSides   = errors.New("response: envelope has both data and err")
	ErrNeitherSide = errors.New("response: envelope has neither data nor err")
)

// Options controls how Build picks the status code. ErrorResponseCode is
// only read when IsErr is set; zero means 500.
type Options struct {
	IsErr             bool
	IsCreate          bool
	IsRead            bool
	ErrorResponseCode int
}

// Envelope is the response body. Exactly one of its sides is non-null.
type Envelope struct {
	body   any
	isErr  bool
	status int
}

// Ok wraps a success body. A body that encodes as null is written as {}.
func Ok(data any) Envelope {
	if isNilValue(data) {
		data = struct{}{}
	}
	return Envelope{body: data}
}

// Fail wraps an error body. error values are converted to *APIError so that
// err always carries a message. A body that encodes as null is replaced by
// an APIError carrying the status text.
func Fail(body any, status int) Envelope {
	if isNilValue(body) {
		body = nil
	}
	if e, ok := body.(error); ok {
		if apiErr := apierrors.AsAPIError(e); apiErr != nil {
			body = apiErr
		} else {
			body = nil
		}
	}
	if body == nil {
		body = statusError(status)
	}
	return Envelope{body: body, isErr: true, status: status}
}

// IsErr reports whether the envelope carries an error.
func (e Envelope) IsErr() bool { return e.isErr }

// Data returns the success body, or nil for an error envelope.
func (e Envelope) Data() any {
	if e.isErr {
		return nil
	}
	return e.body
}

// Err returns the error body, or nil for a success envelope.
func (e Envelope) Err() any {
	if !e.isErr {
		return nil
	}
	return e.body
}

type envelopeWire struct {
	Data json.RawMessage `json:"data"`
	Err  json.RawMessage `json:"err"`
}

// MarshalJSON always writes both keys, the unused one as null.
func (e Envelope) MarshalJSON() ([]byte, error) {
	raw, err := schema.ToJSON(e.body)
	if err != nil {
		return nil, err
	}
	if isNull(raw) {
		if raw, err = e.placeholder(); err != nil {
			return nil, err
		}
	}
	w := envelopeWire{Data: json.RawMessage("null"), Err: json.RawMessage("null")}
	if e.isErr {
		w.Err = raw
	} else {
		w.Data = raw
	}
	return json.Marshal(w)
}

func (e Envelope) placeholder() ([]byte, error) {
	if e.isErr {
		return json.Marshal(statusError(e.status))
	}
	return []byte("{}"), nil
}

// UnmarshalJSON reads an envelope, keeping the non-null side as raw JSON.
func (e *Envelope) UnmarshalJSON(raw []byte) error {
	var w envelopeWire
	if err := schema.Decode(raw, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrNotEnvelope, err)
	}
	hasData, hasErr := !isNull(w.Data), !isNull(w.Err)
	switch {
	case hasData && hasErr:
		return ErrBothSides
	case hasData:
		*e = Envelope{body: w.Data}
	case hasErr:
		*e = Envelope{body: w.Err, isErr: true}
	default:
		return ErrNeitherSide
	}
	return nil
}

// Decode unmarshals the populated side into dst.
func (e Envelope) Decode(dst any) error {
	raw, err := schema.ToJSON(e.body)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// Parse reads an envelope from raw JSON.
func Parse(raw []byte) (Envelope, error) {
	var e Envelope
	err := e.UnmarshalJSON(raw)
	return e, err
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// isNilValue reports whether v is nil or a nil pointer, map, slice,
// interface, func or chan.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// sendableStatus maps anything net/http would refuse to write to 500.
func sendableStatus(status int) int {
	if status < 100 || status > 999 {
		return http.StatusInternalServerError
	}
	return status
}

func statusError(status int) *apierrors.APIError {
	status = sendableStatus(status)
	text := http.StatusText(status)
	if text == "" {
		text = http.StatusText(http.StatusInternalServerError)
	}
	return apierrors.New(status, text)
}

// Response is an envelope with the status it is sent under.
type Response struct {
	StatusCode int
	Envelope   Envelope
}

// Build puts body on the side opts selects and picks the status:
// an error uses ErrorResponseCode or 500, a create 201, a read whose body has
// a falsy top-level "exists" 404, and anything else 200.
func Build(body any, opts Options) Response {
	status := http.StatusOK
	switch {
	case opts.IsErr:
		status = opts.ErrorResponseCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
	case opts.IsCreate:
		status = http.StatusCreated
	case opts.IsRead && missing(body):
		status = http.StatusNotFound
	}

	if opts.IsErr {
		return Response{StatusCode: status, Envelope: Fail(body, status)}
	}
	return Response{StatusCode: status, Envelope: Ok(body)}
}

// Success builds a non-error response.
func Success(body any, opts Options) Response {
	opts.IsErr = false
	return Build(body, opts)
}

// UserError builds an error response, 400 unless opts says otherwise.
func UserError(body any, opts Options) Response {
	opts.IsErr = true
	if opts.ErrorResponseCode == 0 {
		opts.ErrorResponseCode = http.StatusBadRequest
	}
	return Build(body, opts)
}

// UnexpectedError builds an error response, 500 unless opts says otherwise.
func UnexpectedError(body any, opts Options) Response {
	opts.IsErr = true
	if opts.ErrorResponseCode == 0 {
		opts.ErrorResponseCode = http.StatusInternalServerError
	}
	return Build(body, opts)
}

// missing reports whether body is an object whose "exists" key is present
// and falsy: false, null, 0 or "".
func missing(body any) bool {
	raw, err := schema.ToJSON(body)
	if err != nil {
		return false
	}
	var obj map[string]json.RawMessage
	if json.Unmarshal(raw, &obj) != nil {
		return false
	}
	exists, ok := obj["exists"]
	if !ok {
		return false
	}
	var v any
	if json.Unmarshal(exists, &v) != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0
	case string:
		return x == ""
	}
	return false
}

// MessageResult is the data of calls that only report what they did.
type MessageResult struct {
	Message string `json:"message"`
}

// Message returns a MessageResult.
func Message(format string, args ...any) MessageResult {
	return MessageResult{Message: fmt.Sprintf(format, args...)}
}
