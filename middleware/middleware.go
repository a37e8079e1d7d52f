package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"

	fs "github.com/reoring/fieldshape"
	"github.com/reoring/fieldshape/dto"
	"github.com/reoring/fieldshape/i18n"
)

// MaxBodyBytes bounds request bodies read by ValidateJSON.
const MaxBodyBytes = 1 << 20

// CodeBodyTooLarge is reported at "/" for bodies over MaxBodyBytes.
const CodeBodyTooLarge = "body_too_large"

type ctxKeyDecoded struct{}

// ContextWithDecoded attaches a loaded payload to the context.
func ContextWithDecoded(ctx context.Context, v map[string]any) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded{}, v)
}

// DecodedFromContext retrieves the loaded payload from context.
func DecodedFromContext(ctx context.Context) (map[string]any, bool) {
	v, ok := ctx.Value(ctxKeyDecoded{}).(map[string]any)
	return v, ok
}

// ErrorPayload shapes Issues for JSON responses: the nested message tree
// under "errors" and the flat issue list under "issues".
func ErrorPayload(issues fs.Issues) map[string]any {
	return map[string]any{"errors": issues.Messages(), "issues": issues}
}

// Decode reads body and validates it with d. Validation failures come back
// as Issues.
func Decode(ctx context.Context, d dto.DTO, body io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxBodyBytes {
		limit := strconv.Itoa(MaxBodyBytes)
		return nil, fs.Issues{fs.RootPath().Issue(CodeBodyTooLarge,
			i18n.T(CodeBodyTooLarge, map[string]string{"max": limit}), "max", MaxBodyBytes)}
	}
	out, err := d.DecodeBytes(ctx, data)
	var ve *dto.ValidationException
	if errors.As(err, &ve) {
		return nil, ve.Extra
	}
	return out, err
}

// ValidateJSON loads the request body with d and stores the result in the
// request context; invalid payloads get a 400 with the error payload.
func ValidateJSON(d dto.DTO, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, err := Decode(r.Context(), d, r.Body)
		if err != nil {
			body := map[string]any{"error": err.Error()}
			if iss, ok := fs.AsIssues(err); ok {
				body = ErrorPayload(iss)
			}
			writeJSON(w, http.StatusBadRequest, body)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithDecoded(r.Context(), v)))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
