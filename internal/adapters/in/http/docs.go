package http

import (
	"net/http"
	"sync"

	"fulfillment/internal/generated/servers"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// apiDoc serves the embedded OpenAPI document through the swag registry,
// which is where echo-swagger reads doc.json from.
type apiDoc struct {
	json string
}

func (d apiDoc) ReadDoc() string {
	return d.json
}

var registerDoc sync.Once

// RegisterDocs mounts the Swagger UI under /swagger and the raw document
// at /openapi.json.
func RegisterDocs(e *echo.Echo) error {
	spec, err := servers.GetSwagger()
	if err != nil {
		return err
	}
	raw, err := spec.MarshalJSON()
	if err != nil {
		return err
	}

	registerDoc.Do(func() {
		swag.Register(swag.Name, apiDoc{json: string(raw)})
	})

	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, raw)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
