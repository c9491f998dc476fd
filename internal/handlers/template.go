package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maquinex/import-service/internal/template"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DownloadTemplate serves the blank import template workbook.
// GET /internal/import/template
func DownloadTemplate(c *gin.Context) {
	data, err := template.Bytes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo generar la plantilla"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", template.Filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
