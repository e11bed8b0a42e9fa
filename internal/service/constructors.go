package service

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gitlab.com/f1hub/f1hub-service/internal/store"
	"gitlab.com/f1hub/f1hub-service/internal/validate"
	"gitlab.com/f1hub/f1hub-service/pkg/model"
)

// findConstructors responds with the constructor standings matching the URL
// parameters, ordered by position. The body carries a count alongside the
// items, as the fan-site standings page expects.
//
// The URL parameter 'team' filters on an exact team name, 'season' on an
// exact season. The parameters 'minPoints' and 'maxPoints' bound the points
// field. The parameter 'fields' is a comma-separated projection list; ids are
// always included.
//
// REST API calls:
//
//	> curl "http://localhost:8080/api/constructors"
//	> curl "http://localhost:8080/api/constructors?season=2024&minPoints=400"
//	> curl "http://localhost:8080/api/constructors?fields=team,points"
func (s *Server) findConstructors(c *gin.Context) {
	filter, ok := parseConstructorFilter(c)
	if !ok {
		return
	}
	ctx, cancel := s.storeContext(c)
	defer cancel()
	constructors, err := s.constructors.List(ctx, filter)
	if err != nil {
		s.storeError(c, "constructor", err)
		return
	}
	if constructors == nil {
		constructors = []model.Constructor{}
	}
	c.IndentedJSON(http.StatusOK, gin.H{"count": len(constructors), "constructors": constructors})
}

// parseConstructorFilter inspects the URL parameters and builds the list
// filter. Projection fields are passed through to the document store, which
// ignores unknown field names.
func parseConstructorFilter(c *gin.Context) (store.ConstructorFilter, bool) {
	filter := store.ConstructorFilter{Team: c.Query("team")}
	var ok bool
	if filter.Season, ok = parseRangeBound(c, "season"); !ok {
		return store.ConstructorFilter{}, false
	}
	if filter.MinPoints, ok = parseRangeBound(c, "minPoints"); !ok {
		return store.ConstructorFilter{}, false
	}
	if filter.MaxPoints, ok = parseRangeBound(c, "maxPoints"); !ok {
		return store.ConstructorFilter{}, false
	}
	if fields := c.Query("fields"); fields != "" {
		for _, field := range strings.Split(fields, ",") {
			filter.Fields = append(filter.Fields, strings.TrimSpace(field))
		}
	}
	return filter, true
}

// createConstructor inserts the constructor specified in the request's JSON
// into the standings. Position, team, and the driver lineup are mandatory;
// the season defaults to 2024 and the statistics default to zero.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/constructors --request "POST" --include --header "Content-Type: application/json" --data '{"position": 1, "team": "McLaren", "drivers": "Norris / Piastri", "points": 599}'
func (s *Server) createConstructor(c *gin.Context) {
	var raw map[string]any
	if err := c.BindJSON(&raw); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	record, err := validate.ConstructorSchema.Normalize(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := s.storeContext(c)
	defer cancel()
	created, err := s.constructors.Create(ctx, constructorFromRecord(record))
	if err != nil {
		s.storeError(c, "constructor", err)
		return
	}
	c.IndentedJSON(http.StatusCreated, created)
}

// findConstructorByID locates the constructor whose id matches the id
// parameter of the request URL. Document ids are opaque; a malformed id can
// never match a stored document and is answered with NOT FOUND.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/constructors/66b2f0a1e4b0c8d9a1b2c3d4
func (s *Server) findConstructorByID(c *gin.Context) {
	ctx, cancel := s.storeContext(c)
	defer cancel()
	constructor, err := s.constructors.GetByID(ctx, c.Param("id"))
	if err != nil {
		s.storeError(c, "constructor", err)
		return
	}
	c.IndentedJSON(http.StatusOK, constructor)
}

// updateConstructorByID merges the values specified in the JSON (and only
// those) into the constructor with the given id and responds with the new
// version of the constructor.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/constructors/66b2f0a1e4b0c8d9a1b2c3d4 --request "PUT" --include --header "Content-Type: application/json" --data '{"points": 650}'
func (s *Server) updateConstructorByID(c *gin.Context) {
	var raw map[string]any
	if err := c.BindJSON(&raw); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	fields, err := validate.ConstructorSchema.NormalizeUpdate(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := s.storeContext(c)
	defer cancel()
	updated, errUpdate := s.constructors.Update(ctx, c.Param("id"), fields)
	if errUpdate != nil {
		s.storeError(c, "constructor", errUpdate)
		return
	}
	c.IndentedJSON(http.StatusOK, updated)
}

// deleteConstructorByID deletes the constructor with the given id from the
// standings and confirms the deletion with the id.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/constructors/66b2f0a1e4b0c8d9a1b2c3d4 --request "DELETE"
func (s *Server) deleteConstructorByID(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := s.storeContext(c)
	defer cancel()
	if err := s.constructors.Delete(ctx, id); err != nil {
		s.storeError(c, "constructor", err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": "constructor deleted", "id": id})
}

// constructorFromRecord builds the model from a normalized record.
func constructorFromRecord(record map[string]any) model.Constructor {
	var con model.Constructor
	if v, ok := record["position"].(int64); ok {
		con.Position = &v
	}
	if v, ok := record["team"].(string); ok {
		con.Team = &v
	}
	if v, ok := record["color"].(string); ok {
		con.Color = &v
	}
	if v, ok := record["drivers"].(string); ok {
		con.Drivers = &v
	}
	if v, ok := record["points"].(int64); ok {
		con.Points = &v
	}
	if v, ok := record["wins"].(int64); ok {
		con.Wins = &v
	}
	if v, ok := record["podiums"].(int64); ok {
		con.Podiums = &v
	}
	if v, ok := record["season"].(int64); ok {
		con.Season = &v
	}
	return con
}
