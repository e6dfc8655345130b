package handlers

import (
	"errors"
	"log"
	"net/http"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"readit/internal/services"
)

// bindingErrors flattens a gin binding failure into the field-keyed JSON the
// frontend expects, e.g. {"email": "must be a valid email address"}.
func bindingErrors(err error) gin.H {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return gin.H{"error": "invalid request body"}
	}

	out := gin.H{}
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "must not be empty"
		case "email":
			out[field] = "must be a valid email address"
		case "min":
			out[field] = "must be at least " + fe.Param() + " characters long"
		case "max":
			out[field] = "must be at most " + fe.Param() + " characters long"
		default:
			out[field] = "is invalid"
		}
	}
	return out
}

// handleServiceError maps the service sentinels to HTTP codes. Anything
// unrecognized is a storage failure: logged, answered with a generic 500.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidVoteValue):
		c.JSON(http.StatusBadRequest, gin.H{"value": "Value must be -1, 0 or 1"})
	case errors.Is(err, services.ErrSubExists):
		c.JSON(http.StatusBadRequest, gin.H{"name": "Sub already exists"})
	case errors.Is(err, services.ErrEmptySearch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be empty"})
	case errors.Is(err, services.ErrNotAnImage), errors.Is(err, services.ErrInvalidImageType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
