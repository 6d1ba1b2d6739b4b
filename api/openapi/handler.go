// Package openapi serves Swagger UI over the OpenAPI 3.1 document that huma
// generates at runtime.
package openapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// DocsPath is where Swagger UI is served.
const DocsPath = "/docs"

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>%s</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "%s",
      dom_id: "#swagger-ui",
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: "BaseLayout",
    });
  </script>
</body>
</html>`

// RegisterRoutes adds Swagger UI for the OpenAPI document at specURL.
// Huma's built-in docs page must be disabled (huma.Config.DocsPath = "")
// so the paths don't collide.
func RegisterRoutes(e *echo.Echo, title, specURL string) {
	page := fmt.Sprintf(swaggerUIHTML, title, specURL)
	e.GET(DocsPath, func(c echo.Context) error {
		return c.HTML(http.StatusOK, page)
	})
	e.GET(DocsPath+"/", redirectToUI)
	e.GET("/swagger", redirectToUI)
}

func redirectToUI(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, DocsPath)
}
