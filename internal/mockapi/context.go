package mockapi

import (
	"context"
	"net/http"
)

func contextWithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func userIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
