package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// JSONError writes the error envelope shared by every endpoint.
func JSONError(c *gin.Context, code int, message, errCode string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "error": message, "code": errCode})
}
