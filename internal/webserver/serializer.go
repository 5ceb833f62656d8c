package webserver

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
)

// jsonSerializer implements echo.JSONSerializer on top of json-iterator.
// When pretty is set every response is indented.
type jsonSerializer struct {
	api    jsoniter.API
	pretty bool
}

func newJSONSerializer(pretty bool) *jsonSerializer {
	return &jsonSerializer{api: jsoniter.ConfigCompatibleWithStandardLibrary, pretty: pretty}
}

func (s *jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := s.api.NewEncoder(c.Response())
	if indent == "" && s.pretty {
		indent = "  "
	}
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (s *jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := s.api.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed JSON body: "+err.Error()).SetInternal(err)
	}
	return nil
}
