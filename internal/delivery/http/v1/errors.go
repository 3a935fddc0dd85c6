package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response details, kept identical across the cases they cover: an
// unknown username and a wrong password share detailInvalidCredentials,
// and a missing and a foreign-owned task share detailNotFound.
const (
	detailMissingCredentials = "Username and password are required."
	detailUserExists         = "User already exists."
	detailInvalidCredentials = "Invalid credentials."
	detailInvalidToken       = "Invalid or missing token."
	detailNotFound           = "Not found."
	detailTitleRequired      = "Title is required."
	detailTitleTooLong       = "Title must be 255 characters or fewer."
	detailInvalidBody        = "Invalid request body."
)

type apiError struct {
	Code   int    `json:"-"`
	Detail string `json:"detail"`
}

func newAPIError(code int, detail string) apiError {
	return apiError{
		Code:   code,
		Detail: detail,
	}
}

func (e apiError) Error() string {
	return e.Detail
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, err)
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(detail string) apiError {
	return newAPIError(http.StatusBadRequest, detail)
}

func newUnauthorizedError(detail string) apiError {
	return newAPIError(http.StatusUnauthorized, detail)
}

func newNotFoundError() apiError {
	return newAPIError(http.StatusNotFound, detailNotFound)
}
