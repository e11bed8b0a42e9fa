package service

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SearchItem is one entry of the site search catalog.
type SearchItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// defaultCatalog lists the pages of the fan site. The search box matches
// against it; no store is involved.
var defaultCatalog = []SearchItem{
	{Title: "Driver Standings", Description: "Championship points, wins, and podiums for every driver", URL: "/driversPage"},
	{Title: "Constructor Standings", Description: "Team standings of the current season", URL: "/constructorsPage"},
	{Title: "Race Calendar", Description: "All Grands Prix of the season with dates and circuits", URL: "/calendar"},
	{Title: "Latest News", Description: "Paddock news, rumours, and race reports", URL: "/news"},
	{Title: "Contact Us", Description: "Send the editorial team a message", URL: "/contact"},
}

// search matches the query case-insensitively against the titles and
// descriptions of the catalog. An empty query yields an empty result list,
// never an error.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/api/search?q=standings"
func (s *Server) search(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("q")))
	results := []SearchItem{}
	if query != "" {
		for _, item := range s.catalog {
			if strings.Contains(strings.ToLower(item.Title), query) ||
				strings.Contains(strings.ToLower(item.Description), query) {
				results = append(results, item)
			}
		}
	}
	c.IndentedJSON(http.StatusOK, results)
}
