package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/picstream/internal/middleware"
	"github.com/hitoshi/picstream/internal/model"
)

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
// エラーボディの書き込みはmiddleware.WriteErrorResponseに集約されている。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeMissingFields,
		model.ErrCodeInvalidUsername,
		model.ErrCodeImageRequired,
		model.ErrCodeAvatarRequired,
		model.ErrCodeInvalidImageData,
		"INVALID_REQUEST":
		return http.StatusBadRequest
	case model.ErrCodeUnauthorized,
		model.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case model.ErrCodePostForbidden:
		return http.StatusForbidden
	case model.ErrCodePostNotFound,
		model.ErrCodeUserNotFound:
		return http.StatusNotFound
	case model.ErrCodeUsernameTaken,
		model.ErrCodeLikeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeUnauthorized は認証切れレスポンスを書き込む。
func writeUnauthorized(w http.ResponseWriter) {
	middleware.WriteUnauthorized(w)
}

// decodeJSONBody はリクエストボディをJSONとしてデコードする。
// 解析に失敗した場合はfalseを返し、エラーレスポンスを書き込み済みにする。
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "正しいJSON形式でリクエストしてください。",
		})
		return false
	}
	return true
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}
