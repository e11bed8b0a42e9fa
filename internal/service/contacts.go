package service

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/f1hub/f1hub-service/internal/validate"
	"gitlab.com/f1hub/f1hub-service/pkg/model"
)

// createContact stores a message submitted through the contact form. All four
// form fields must be present; beyond presence nothing is checked server-side
// (the form itself validates the email format). The endpoint is registered
// both under /api/contacts and as /send-data, the path the form posts to.
//
// Example REST API call:
//
//	> curl http://localhost:8080/send-data --request "POST" --include --header "Content-Type: application/json" --data '{"name": "Anna", "email": "anna@example.com", "number": "+420 777 123 456", "msg": "Great season!"}'
func (s *Server) createContact(c *gin.Context) {
	var raw map[string]any
	if err := c.BindJSON(&raw); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	record, err := validate.ContactSchema.Normalize(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := s.storeContext(c)
	defer cancel()
	created, err := s.contacts.Create(ctx, contactFromRecord(record))
	if err != nil {
		s.storeError(c, "contact", err)
		return
	}
	c.IndentedJSON(http.StatusCreated, created)
}

// findContacts responds with all submitted messages in submission order.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/contacts
func (s *Server) findContacts(c *gin.Context) {
	ctx, cancel := s.storeContext(c)
	defer cancel()
	contacts, err := s.contacts.List(ctx)
	if err != nil {
		s.storeError(c, "contact", err)
		return
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	c.IndentedJSON(http.StatusOK, gin.H{"count": len(contacts), "contacts": contacts})
}

// findContactByID locates the message whose id matches the id parameter of
// the request URL.
func (s *Server) findContactByID(c *gin.Context) {
	ctx, cancel := s.storeContext(c)
	defer cancel()
	contact, err := s.contacts.GetByID(ctx, c.Param("id"))
	if err != nil {
		s.storeError(c, "contact", err)
		return
	}
	c.IndentedJSON(http.StatusOK, contact)
}

// deleteContactByID deletes the message with the given id and confirms the
// deletion with the id.
func (s *Server) deleteContactByID(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := s.storeContext(c)
	defer cancel()
	if err := s.contacts.Delete(ctx, id); err != nil {
		s.storeError(c, "contact", err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": "contact deleted", "id": id})
}

// contactFromRecord builds the model from a normalized record.
func contactFromRecord(record map[string]any) model.Contact {
	var m model.Contact
	if v, ok := record["name"].(string); ok {
		m.Name = &v
	}
	if v, ok := record["email"].(string); ok {
		m.Email = &v
	}
	if v, ok := record["number"].(string); ok {
		m.Number = &v
	}
	if v, ok := record["msg"].(string); ok {
		m.Msg = &v
	}
	return m
}
