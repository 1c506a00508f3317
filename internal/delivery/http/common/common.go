package http_common

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/krishkpatil/getflix/internal/model"
)

const UserTokenHeader = "X-user-token"

type ErrorResponse struct {
	Message string `json:"message"`
}

// ParticipantID resolves the caller identity: the user_id query parameter wins
// over the X-user-token header.
func ParticipantID(ctx *gin.Context) model.ParticipantID {
	if id := ctx.Query("user_id"); id != "" {
		return id
	}
	return ctx.GetHeader(UserTokenHeader)
}

// QueryInt returns def for a missing parameter and ok=false for a malformed one.
func QueryInt(ctx *gin.Context, key string, def int) (int, bool) {
	raw := ctx.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
