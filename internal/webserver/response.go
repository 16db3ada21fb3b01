package webserver

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
)

// RestResult is the common response envelope for single results and errors.
type RestResult struct {
	Code   string      `json:"code"`
	Msg    string      `json:"msg,omitempty"`
	Detail interface{} `json:"detail,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// PageResult wraps a paginated collection.
type PageResult struct {
	Data    interface{} `json:"data"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
}

func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, RestResult{Code: "OK", Data: data})
}

func Fail(c echo.Context, status int, code, msg string, detail interface{}) error {
	return c.JSON(status, RestResult{Code: code, Msg: msg, Detail: detail})
}

func Paged(c echo.Context, data interface{}, total int64, page, perPage int) error {
	return c.JSON(http.StatusOK, PageResult{Data: data, Total: total, Page: page, PerPage: perPage})
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONSerializer implements echo's serializer interface on top of
// json-iterator.
type JSONSerializer struct{}

func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

func (s *JSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (s *JSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := json.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}
