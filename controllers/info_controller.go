package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const indexPage = `<h1>Products API</h1>
<p>API is running</p>
<ul>
  <li><a href="/api/products">/api/products</a></li>
  <li><a href="/api/products?category=Electronics">Filter by category</a></li>
  <li><a href="/api/products?minPrice=50">Min price</a></li>
</ul>
`

func Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPage))
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func Version(version, updatedAt string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":   version,
			"updatedAt": updatedAt,
		})
	}
}
