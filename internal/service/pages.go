package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// indexPage links the endpoints that can be tried from a browser.
const indexPage = `
    <h1>Server is running!</h1>
    <ul>
      <li><a href="/api/drivers">/api/drivers</a></li>
      <li><a href="/api/constructors">/api/constructors</a></li>
      <li><a href="/api/search?q=standings">/api/search?q=standings</a></li>
      <li><a href="/hello?name=Alex">/hello?name=Alex</a></li>
      <li><a href="/hello">/hello (missing name)</a></li>
      <li><a href="/sum?a=5&b=3">/sum?a=5&b=3</a></li>
      <li><a href="/sum?a=5">/sum?a=5 (missing b)</a></li>
      <li><a href="/user/123">/user/123</a></li>
      <li><a href="/status">/status</a></li>
      <li><a href="/unknown">/unknown (404 test)</a></li>
    </ul>
`

// index responds with a small HTML page listing the available endpoints.
func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPage))
}

// hello greets the caller by the name given in the URL parameter.
func (s *Server) hello(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing 'name' query parameter"})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": "Hello, " + name})
}

// sum adds the two URL parameters. Unlike the integer fields of the resource
// APIs, this endpoint accepts floating point input.
func (s *Server) sum(c *gin.Context) {
	a, errA := strconv.ParseFloat(c.Query("a"), 64)
	b, errB := strconv.ParseFloat(c.Query("b"), 64)
	if errA != nil || errB != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Both 'a' and 'b' must be valid numbers"})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"sum": a + b})
}

// user echoes the id from the request URL. The id is opaque here; there is no
// user store behind this endpoint.
func (s *Server) user(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{"id": c.Param("id"), "role": "user"})
}

// status reports that the server is alive together with the current time.
func (s *Server) status(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{
		"status": "Server is running",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
