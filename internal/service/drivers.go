package service

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"gitlab.com/f1hub/f1hub-service/internal/store"
	"gitlab.com/f1hub/f1hub-service/internal/validate"
	"gitlab.com/f1hub/f1hub-service/pkg/model"
)

// findDrivers responds with the list of drivers matching the URL parameters
// as a JSON array, ordered by id. An empty result is a valid result and is
// answered with an empty array, not with NOT FOUND.
//
// The URL parameter 'team' filters on an exact team name. The parameters
// 'minPoints' and 'maxPoints' bound the points column. All filters are
// combined with AND. The parameter 'fields' is a comma-separated list of
// columns to return per driver; the id is always included.
//
// REST API calls:
//
//	> curl "http://localhost:8080/api/drivers"
//	> curl "http://localhost:8080/api/drivers?team=Red%20Bull&minPoints=300"
//	> curl "http://localhost:8080/api/drivers?fields=name,points"
func (s *Server) findDrivers(c *gin.Context) {
	filter, ok := parseDriverFilter(c)
	if !ok {
		return
	}
	ctx, cancel := s.storeContext(c)
	defer cancel()
	drivers, err := s.drivers.List(ctx, filter)
	if err != nil {
		s.storeError(c, "driver", err)
		return
	}
	if drivers == nil {
		drivers = []model.Driver{}
	}
	c.IndentedJSON(http.StatusOK, drivers)
}

// parseDriverFilter inspects the URL parameters and builds the list filter.
func parseDriverFilter(c *gin.Context) (store.DriverFilter, bool) {
	filter := store.DriverFilter{Team: c.Query("team")}
	var ok bool
	if filter.MinPoints, ok = parseRangeBound(c, "minPoints"); !ok {
		return store.DriverFilter{}, false
	}
	if filter.MaxPoints, ok = parseRangeBound(c, "maxPoints"); !ok {
		return store.DriverFilter{}, false
	}
	if fields := c.Query("fields"); fields != "" {
		for _, field := range strings.Split(fields, ",") {
			field = strings.TrimSpace(field)
			if !store.ValidDriverField(field) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid fields parameter"})
				return store.DriverFilter{}, false
			}
			filter.Fields = append(filter.Fields, field)
		}
	}
	return filter, true
}

// parseRangeBound reads an optional numeric URL parameter. Absence yields a
// nil bound; a value that does not parse aborts the request.
func parseRangeBound(c *gin.Context, param string) (*int64, bool) {
	value := c.Query(param)
	if value == "" {
		return nil, true
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + param + " parameter"})
		return nil, false
	}
	return &n, true
}

// createDriver inserts the driver specified in the request's JSON into the
// database. Name and team are mandatory; points, wins, and podiums default to
// zero. It responds with the full driver data including the newly assigned id.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/drivers --request "POST" --include --header "Content-Type: application/json" --data '{"name": "Max Verstappen", "team": "Red Bull", "points": 395}'
func (s *Server) createDriver(c *gin.Context) {
	var raw map[string]any
	if err := c.BindJSON(&raw); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	record, err := validate.DriverSchema.Normalize(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := s.storeContext(c)
	defer cancel()
	created, err := s.drivers.Create(ctx, driverFromRecord(record))
	if err != nil {
		s.storeError(c, "driver", err)
		return
	}
	c.IndentedJSON(http.StatusCreated, created)
}

// findDriverByID locates the driver whose ID value matches the id parameter
// of the request URL, then returns that driver as a response.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/drivers/7
func (s *Server) findDriverByID(c *gin.Context) {
	id, err := validate.ParseID(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id parameter"})
		return
	}
	ctx, cancel := s.storeContext(c)
	defer cancel()
	driver, errGet := s.drivers.GetByID(ctx, id)
	if errGet != nil {
		s.storeError(c, "driver", errGet)
		return
	}
	c.IndentedJSON(http.StatusOK, driver)
}

// updateDriverByID updates the driver whose ID value matches the id parameter
// of the request URL, merges the values specified in the JSON (and only
// those), and finally responds with the new version of the driver.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/drivers/7 --request "PUT" --include --header "Content-Type: application/json" --data '{"points": 419}'
func (s *Server) updateDriverByID(c *gin.Context) {
	id, err := validate.ParseID(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id parameter"})
		return
	}
	var raw map[string]any
	if errBind := c.BindJSON(&raw); errBind != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	fields, errNorm := validate.DriverSchema.NormalizeUpdate(raw)
	if errNorm != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errNorm.Error()})
		return
	}
	ctx, cancel := s.storeContext(c)
	defer cancel()
	updated, errUpdate := s.drivers.Update(ctx, id, fields)
	if errUpdate != nil {
		s.storeError(c, "driver", errUpdate)
		return
	}
	c.IndentedJSON(http.StatusOK, updated)
}

// deleteDriverByID deletes the driver whose ID value matches the id parameter
// of the request URL from the database and confirms the deletion with the id.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/drivers/7 --request "DELETE"
func (s *Server) deleteDriverByID(c *gin.Context) {
	id, err := validate.ParseID(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id parameter"})
		return
	}
	ctx, cancel := s.storeContext(c)
	defer cancel()
	if errDelete := s.drivers.Delete(ctx, id); errDelete != nil {
		s.storeError(c, "driver", errDelete)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": "driver deleted", "id": id})
}

// driverFromRecord builds the model from a normalized record.
func driverFromRecord(record map[string]any) model.Driver {
	var d model.Driver
	if v, ok := record["name"].(string); ok {
		d.Name = &v
	}
	if v, ok := record["team"].(string); ok {
		d.Team = &v
	}
	if v, ok := record["points"].(int64); ok {
		d.Points = &v
	}
	if v, ok := record["wins"].(int64); ok {
		d.Wins = &v
	}
	if v, ok := record["podiums"].(int64); ok {
		d.Podiums = &v
	}
	return d
}
