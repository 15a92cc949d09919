package handlers_test

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/SW2PDEPLOY/front/internal/config"
	"github.com/SW2PDEPLOY/front/internal/generator"
	"github.com/SW2PDEPLOY/front/internal/handlers"
	"github.com/SW2PDEPLOY/front/internal/imaging"
	"github.com/SW2PDEPLOY/front/internal/middleware"
)

const testSecret = "test-secret-key-for-jwt-signing"

func signToken(t *testing.T, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub})
	tokenString, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tokenString
}

// newRouter wires the real middleware and handlers against a backend URL,
// mirroring the route table in cmd/server.
func newRouter(backendURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		GeneratorAPIBaseURL: backendURL,
		JWTSecret:           testSecret,
		MaxImageWidth:       1024,
		JPEGQuality:         80,
	}

	codec := imaging.NewCodec(cfg.MaxImageWidth, cfg.JPEGQuality)
	client := generator.NewClient(cfg.GeneratorAPIBaseURL, nil)

	mockupsHandler := handlers.NewMockupsHandler(codec, client)
	promptsHandler := handlers.NewPromptsHandler(client)
	appsHandler := handlers.NewAppsHandler(client)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		api.POST("/mockups/analyze", mockupsHandler.Analyze)
		api.POST("/mockups/generate", mockupsHandler.Generate)
		api.POST("/prompts/generate", promptsHandler.Generate)
		api.GET("/apps", appsHandler.List)
		api.GET("/apps/:app_id", appsHandler.Get)
		api.PATCH("/apps/:app_id", appsHandler.Update)
		api.DELETE("/apps/:app_id", appsHandler.Delete)
	}
	return router
}

func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 60, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// multipartUpload builds a multipart body with form fields plus one file
// part carrying an explicit content type, the way browsers submit uploads.
func multipartUpload(t *testing.T, fields map[string]string, fileName, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, fileName))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)

	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}
