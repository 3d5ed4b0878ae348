package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var assets embed.FS

// Register подключает одностраничный клиент: "/" отдает index.html, "/static/*" - ресурсы
func Register(r *gin.Engine) error {
	static, err := fs.Sub(assets, "static")
	if err != nil {
		return err
	}
	index, err := fs.ReadFile(static, "index.html")
	if err != nil {
		return err
	}

	r.StaticFS("/static", http.FS(static))
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	return nil
}
