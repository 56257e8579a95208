package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 全エンドポイント共通のレスポンス封筒。
// 成功: {status:"success", data:{...}}
// クライアント起因: {status:"fail", message}
// サーバ起因: {status:"error", message}
type SuccessResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

type FailResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func success(data interface{}) SuccessResponse {
	return SuccessResponse{Status: "success", Data: data}
}

func fail(msg string) FailResponse {
	return FailResponse{Status: "fail", Message: msg}
}

func errorResponse(msg string) FailResponse {
	return FailResponse{Status: "error", Message: msg}
}

// usecaseのHTTPErrorをここで1回だけステータスへ変換する。
// 内部詳細は返さない。messageだけ。
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status >= http.StatusInternalServerError {
			return c.JSON(he.Status, errorResponse(he.Message))
		}
		return c.JSON(he.Status, fail(he.Message))
	}

	//500
	return c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
}
