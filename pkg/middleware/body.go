package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/Eximchain/dappbot-types/internal/schema"
	apierrors "github.com/Eximchain/dappbot-types/pkg/errors"
	"github.com/Eximchain/dappbot-types/pkg/response"
	"github.com/Eximchain/dappbot-types/pkg/shapes"
)

// DefaultMaxBodyBytes is used when a Gate has no limit set.
const DefaultMaxBodyBytes = 1 << 20

type bodyKey struct{}

// Body returns the raw body the gate accepted, or nil outside a gated route.
func Body(ctx context.Context) []byte {
	b, _ := ctx.Value(bodyKey{}).([]byte)
	return b
}

// Gate rejects requests whose body is not a valid instance of a shape. The
// rejection is a 400 user-error envelope. Logger and Metrics may be nil.
type Gate struct {
	Logger   *slog.Logger
	Metrics  *Metrics
	MaxBytes int64
}

// RequireBody is Gate.Require on a gate with no logger or metrics.
func RequireBody(shape shapes.Shape) func(next http.Handler) http.Handler {
	return (&Gate{}).Require(shape)
}

// Require returns a middleware that checks the request body against shape.
// Accepted bodies are passed on unchanged and are also available via Body.
func (g *Gate) Require(shape shapes.Shape) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := g.read(w, r)
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					g.reject(w, r, shape.Name, OutcomeTooLarge,
						apierrors.New(http.StatusRequestEntityTooLarge, "Request body is too large"))
					return
				}
				g.reject(w, r, shape.Name, OutcomeMalformed,
					apierrors.ErrBadRequest.WithMessage("Could not read request body"))
				return
			}

			if !json.Valid(raw) {
				g.reject(w, r, shape.Name, OutcomeMalformed,
					apierrors.ErrBadRequest.WithMessage("Request body is not valid JSON"))
				return
			}

			if err := shape.Check(json.RawMessage(raw)); err != nil {
				g.reject(w, r, shape.Name, OutcomeInvalid,
					apierrors.NewInvalidBodyError(shape.Name).WithDetails(schema.FieldErrors(err)))
				return
			}

			g.Metrics.observeBody(shape.Name, OutcomeValid)
			r.Body = io.NopCloser(bytes.NewReader(raw))
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), bodyKey{}, raw)))
		})
	}
}

func (g *Gate) read(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	limit := g.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	return io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
}

func (g *Gate) reject(w http.ResponseWriter, r *http.Request, shape, outcome string, apiErr *apierrors.APIError) {
	g.Metrics.observeBody(shape, outcome)
	if g.Logger != nil {
		g.Logger.LogAttrs(r.Context(), slog.LevelDebug, "rejected request body",
			slog.String("shape", shape),
			slog.String("outcome", outcome),
			slog.String("path", r.URL.Path),
		)
	}
	response.UserError(apiErr, response.Options{ErrorResponseCode: apiErr.StatusCode}).Write(w)
}
