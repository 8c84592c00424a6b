package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sample-echo-api/internal/echo"
)

// EchoHandler reflects the form fields, query arguments and JSON body of a
// request back to the caller
type EchoHandler struct{}

// NewEchoHandler creates a new echo handler
func NewEchoHandler() *EchoHandler {
	return &EchoHandler{}
}

// @Summary Echo request data
// @Description Returns the form fields, query arguments and JSON body of the request as pretty-printed JSON with sorted keys
// @Tags echo
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Success 200 {object} echo.Result
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 405 {object} middleware.ErrorResponse
// @Failure 413 {object} middleware.ErrorResponse
// @Router /foo [get]
// @Router /foo [post]
func (h *EchoHandler) Echo(c *gin.Context) {
	result, err := echo.Collect(&ginSource{c: c})
	if form := c.Request.MultipartForm; form != nil {
		_ = form.RemoveAll()
	}
	if err != nil {
		ginErr := c.Error(err).SetType(gin.ErrorTypeBind)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ginErr.SetMeta(http.StatusRequestEntityTooLarge)
		}
		c.Abort()
		return
	}

	body, err := echo.Marshal(result)
	if err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypePrivate)
		c.Abort()
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

// ginSource exposes a gin request through echo.Source
type ginSource struct {
	c *gin.Context
}

// Form returns the url-encoded or multipart form fields. Pairs and parts that
// fail to decode are skipped, as in gin's own form cache; only a body over
// the size limit is an error.
func (s *ginSource) Form() (map[string]string, error) {
	if _, err := s.c.MultipartForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
	}
	return echo.FirstValues(s.c.Request.PostForm), nil
}

func (s *ginSource) Query() map[string]string {
	return echo.FirstValues(s.c.Request.URL.Query())
}

func (s *ginSource) JSON() (any, error) {
	if !echo.IsJSONContentType(s.c.GetHeader("Content-Type")) || s.c.Request.Body == nil {
		return nil, nil
	}
	body, err := s.c.GetRawData()
	if err != nil {
		return nil, err
	}
	return echo.DecodeJSON(body)
}
