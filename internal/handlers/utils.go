package handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

type contextKey string

const contextClaimsKey contextKey = "claims"

// MessageResponse is the error body shared by the auth endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

func claimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextClaimsKey).(*Claims)
	return claims, ok
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
